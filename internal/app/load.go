package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/tradegrid/internal/config"
	"github.com/vk/tradegrid/internal/fsutil"
	"github.com/vk/tradegrid/internal/hcl"
	"github.com/vk/tradegrid/internal/yaml"
)

// LoaderForPath picks the pipeline document loader matching the path's
// format: HCL for .hcl, YAML for .yaml/.yml. A directory is probed for
// document files; mixing both formats in one directory is rejected.
func LoaderForPath(path string) (config.Loader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline document path: %w", err)
	}

	if !info.IsDir() {
		return loaderForExtension(filepath.Ext(path))
	}

	hclFiles, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, err
	}
	yamlFiles, err := fsutil.FindFilesByExtension(path, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}

	switch {
	case len(hclFiles) > 0 && len(yamlFiles) > 0:
		return nil, fmt.Errorf("directory %s mixes HCL and YAML pipeline documents", path)
	case len(hclFiles) > 0:
		return hcl.NewLoader(), nil
	case len(yamlFiles) > 0:
		return yaml.NewLoader(), nil
	default:
		return nil, fmt.Errorf("no pipeline documents found in %s", path)
	}
}

func loaderForExtension(ext string) (config.Loader, error) {
	switch ext {
	case ".hcl":
		return hcl.NewLoader(), nil
	case ".yaml", ".yml":
		return yaml.NewLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported pipeline document format %q", ext)
	}
}
