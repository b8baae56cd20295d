package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/tradegrid/internal/config"
	"github.com/vk/tradegrid/internal/ctxlog"
	"github.com/vk/tradegrid/internal/fsutil"
	"github.com/vk/tradegrid/internal/module"
)

// Loader implements config.Loader for HCL pipeline documents.
type Loader struct{}

// NewLoader returns a Loader for .hcl pipeline documents.
func NewLoader() *Loader {
	return &Loader{}
}

var documentSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "module", LabelNames: []string{"stage", "id"}},
	},
}

var moduleSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "impl", Required: true},
		{Name: "critical"},
		{Name: "config"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "dependency", LabelNames: []string{"slot"}},
	},
}

var dependencySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "stage", Required: true},
		{Name: "id", Required: true},
	},
}

// Load reads one .hcl file or a directory of them and translates the module
// blocks into a config.Document, preserving declaration order.
func (l *Loader) Load(ctx context.Context, path string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := fsutil.ResolveDocumentPaths(path, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Loading HCL pipeline document.", "files", paths)

	parser := hclparse.NewParser()
	doc := &config.Document{}

	for _, filePath := range paths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		content, diags := hclFile.Body.Content(documentSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid pipeline document %s: %w", filePath, diags)
		}

		for _, block := range content.Blocks {
			desc, err := decodeModuleBlock(block)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", filePath, err)
			}
			doc.Descriptors = append(doc.Descriptors, desc)
		}
	}

	return doc, nil
}

// decodeModuleBlock translates one `module "<stage>" "<id>"` block into a
// descriptor.
func decodeModuleBlock(block *hcl.Block) (config.Descriptor, error) {
	stage, id := block.Labels[0], block.Labels[1]
	desc := config.Descriptor{
		Stage: module.Stage(stage),
		ID:    id,
	}

	content, diags := block.Body.Content(moduleSchema)
	if diags.HasErrors() {
		return desc, fmt.Errorf("module %s.%s: %w", stage, id, diags)
	}

	if attr, ok := content.Attributes["impl"]; ok {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return desc, fmt.Errorf("module %s.%s: impl: %w", stage, id, diags)
		}
		desc.Impl = val.AsString()
	}

	if attr, ok := content.Attributes["critical"]; ok {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return desc, fmt.Errorf("module %s.%s: critical: %w", stage, id, diags)
		}
		desc.Critical = val.True()
	}

	if attr, ok := content.Attributes["config"]; ok {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return desc, fmt.Errorf("module %s.%s: config: %w", stage, id, diags)
		}
		native, err := ctyToNative(val)
		if err != nil {
			return desc, fmt.Errorf("module %s.%s: config: %w", stage, id, err)
		}
		cfg, ok := native.(map[string]any)
		if !ok {
			return desc, fmt.Errorf("module %s.%s: config must be an object", stage, id)
		}
		desc.Config = module.Config(cfg)
	}

	for _, dep := range content.Blocks {
		ref, err := decodeDependencyBlock(dep)
		if err != nil {
			return desc, fmt.Errorf("module %s.%s: %w", stage, id, err)
		}
		if desc.Dependencies == nil {
			desc.Dependencies = make(map[string]config.Ref)
		}
		desc.Dependencies[dep.Labels[0]] = ref
	}

	return desc, nil
}

// decodeDependencyBlock translates one `dependency "<slot>"` block into a Ref.
func decodeDependencyBlock(block *hcl.Block) (config.Ref, error) {
	slot := block.Labels[0]
	content, diags := block.Body.Content(dependencySchema)
	if diags.HasErrors() {
		return config.Ref{}, fmt.Errorf("dependency %q: %w", slot, diags)
	}

	var ref config.Ref
	for name, attr := range content.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return ref, fmt.Errorf("dependency %q: %s: %w", slot, name, diags)
		}
		switch name {
		case "stage":
			ref.Stage = module.Stage(val.AsString())
		case "id":
			ref.ID = val.AsString()
		}
	}
	return ref, nil
}
