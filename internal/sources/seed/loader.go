package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/promptdeck/promptdeck/internal/utils"
)

// Loader handles loading and parsing of the prompt seed file
type Loader struct {
	filePath string
}

// NewLoader creates a new seed file loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the seed YAML file
func (l *Loader) Load() (File, error) {
	fh, err := os.Open(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer utils.Close(fh)

	var f File
	if err := yaml.NewDecoder(fh).Decode(&f); err != nil {
		return File{}, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	return f, nil
}
