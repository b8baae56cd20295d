package yaml

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/tradegrid/internal/config"
	"github.com/vk/tradegrid/internal/ctxlog"
	"github.com/vk/tradegrid/internal/fsutil"
	"github.com/vk/tradegrid/internal/module"
)

// Loader implements config.Loader for YAML pipeline documents.
type Loader struct{}

// NewLoader returns a Loader for .yaml/.yml pipeline documents.
func NewLoader() *Loader {
	return &Loader{}
}

// descriptorDoc is the YAML shape of one module descriptor. `class` is
// accepted as an alias for `impl`.
type descriptorDoc struct {
	Impl         string            `yaml:"impl"`
	Class        string            `yaml:"class"`
	ID           string            `yaml:"id"`
	Critical     bool              `yaml:"critical"`
	Config       map[string]any    `yaml:"config"`
	Dependencies map[string]refDoc `yaml:"dependencies"`
}

// refDoc is the YAML shape of a dependency reference.
type refDoc struct {
	Type string `yaml:"type"`
	ID   string `yaml:"id"`
}

// Load reads one .yaml/.yml file or a directory of them and translates the
// modules tree into a config.Document, preserving stage and descriptor order.
func (l *Loader) Load(ctx context.Context, path string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := fsutil.ResolveDocumentPaths(path, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}
	logger.Debug("Loading YAML pipeline document.", "files", paths)

	doc := &config.Document{}
	for _, filePath := range paths {
		raw, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", filePath, err)
		}
		if err := appendFile(doc, raw); err != nil {
			return nil, fmt.Errorf("in %s: %w", filePath, err)
		}
	}

	return doc, nil
}

// appendFile parses one YAML document and appends its descriptors. The file
// is walked through yaml.Node rather than a plain map so that stage order
// survives decoding.
func appendFile(doc *config.Document, raw []byte) error {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil // empty document
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return fmt.Errorf("top level must be a mapping")
	}

	modulesNode := mappingValue(top, "modules")
	if modulesNode == nil {
		return fmt.Errorf("missing 'modules' tree")
	}
	if modulesNode.Kind != yaml.MappingNode {
		return fmt.Errorf("'modules' must map stage names to descriptor lists")
	}

	// Mapping node content alternates key, value.
	for i := 0; i+1 < len(modulesNode.Content); i += 2 {
		stageNode, listNode := modulesNode.Content[i], modulesNode.Content[i+1]
		stage := module.Stage(stageNode.Value)
		if listNode.Kind != yaml.SequenceNode {
			return fmt.Errorf("stage %q must hold a sequence of descriptors", stage)
		}
		for _, item := range listNode.Content {
			var dd descriptorDoc
			if err := item.Decode(&dd); err != nil {
				return fmt.Errorf("stage %q: %w", stage, err)
			}
			doc.Descriptors = append(doc.Descriptors, translate(stage, dd))
		}
	}
	return nil
}

// translate converts the YAML descriptor shape into the config model.
func translate(stage module.Stage, dd descriptorDoc) config.Descriptor {
	impl := dd.Impl
	if impl == "" {
		impl = dd.Class
	}
	desc := config.Descriptor{
		Stage:    stage,
		ID:       dd.ID,
		Impl:     impl,
		Critical: dd.Critical,
		Config:   module.Config(dd.Config),
	}
	for slot, ref := range dd.Dependencies {
		if desc.Dependencies == nil {
			desc.Dependencies = make(map[string]config.Ref)
		}
		desc.Dependencies[slot] = config.Ref{Stage: module.Stage(ref.Type), ID: ref.ID}
	}
	return desc
}

// mappingValue returns the value node for the given key of a mapping node.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
