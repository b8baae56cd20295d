package config

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/vk/tradegrid/internal/module"
)

// Ref points at another module in the same document by stage and id.
type Ref struct {
	Stage module.Stage `validate:"required"`
	ID    string       `validate:"required"`
}

func (r Ref) String() string {
	return string(r.Stage) + "." + r.ID
}

// Descriptor declares how to construct and wire one module. Descriptors are
// immutable once loaded.
type Descriptor struct {
	// Stage is the pipeline stage hosting the module.
	Stage module.Stage `validate:"required"`
	// ID is the module's id, unique within the stage. When empty, the
	// assembler generates one.
	ID string
	// Impl is the implementation reference resolved through the registry.
	Impl string `validate:"required"`
	// Critical marks the module as one whose failure aborts the remainder of
	// the cycle's downstream work.
	Critical bool
	// Config is the module's own opaque config block.
	Config module.Config
	// Dependencies maps each dependency slot name to the module satisfying it.
	Dependencies map[string]Ref `validate:"dive"`
}

// Document is a full pipeline configuration: every module descriptor across
// all stages, in declaration order.
type Document struct {
	Descriptors []Descriptor
}

// Validate checks the structural integrity of every descriptor: stage and
// implementation references must be present, dependency refs complete.
// Cross-descriptor rules (duplicate ids, unresolved references, cycles) are
// the assembler's job.
func (d *Document) Validate() error {
	v := validator.New()
	for i, desc := range d.Descriptors {
		if err := v.Struct(desc); err != nil {
			return fmt.Errorf("descriptor %d (%s.%s): %w", i, desc.Stage, desc.ID, err)
		}
	}
	return nil
}

// Loader is the interface for a format-specific pipeline document loader.
// The path may name a single file or a directory of files of the loader's
// format.
type Loader interface {
	Load(ctx context.Context, path string) (*Document, error)
}
