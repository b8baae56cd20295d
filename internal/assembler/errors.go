package assembler

import (
	"fmt"

	"github.com/vk/tradegrid/internal/config"
	"github.com/vk/tradegrid/internal/module"
)

// DuplicateIDError reports two descriptors in one document sharing the same
// stage+id pair.
type DuplicateIDError struct {
	Stage module.Stage
	ID    string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate module id %s.%s in configuration", e.Stage, e.ID)
}

// UnresolvedDependencyError reports a dependency reference that matches no
// descriptor in the document.
type UnresolvedDependencyError struct {
	Dependent config.Ref
	Slot      string
	Missing   config.Ref
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("module %s: dependency slot %q references %s, which does not exist",
		e.Dependent, e.Slot, e.Missing)
}

// CyclicDependencyError reports that the dependency references form a cycle.
// Node names a module on the cycle, in stage.id form.
type CyclicDependencyError struct {
	Node string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("dependency cycle detected involving module %s", e.Node)
}
