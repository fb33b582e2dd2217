package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is the config file written when none exists
const DefaultFileName = "cxp.yaml"

// ConfigFile represents a detected configuration file
type ConfigFile struct {
	Path   string
	Format Format
}

// candidateNames are searched in priority order
var candidateNames = []string{"cxp.yaml", "cxp.yml", "cxp.toml", "cxp.json"}

// FindConfigFile looks for a project config file in dir
func FindConfigFile(dir string) (*ConfigFile, error) {
	var tried []string
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		tried = append(tried, path)
		if _, err := os.Stat(path); err == nil {
			return &ConfigFile{Path: path, Format: DetectFormat(path)}, nil
		}
	}

	return nil, fmt.Errorf("no cxp configuration file found. Looked for: %s",
		strings.Join(tried, ", "))
}

// ResolvePath returns explicit when set, otherwise the detected config file in
// the working directory, falling back to DefaultFileName.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return filepath.Clean(explicit)
	}
	if found, err := FindConfigFile("."); err == nil {
		return found.Path
	}
	return DefaultFileName
}

// DetectFormat picks the codec from the file extension
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}
