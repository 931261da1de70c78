// Package seedfile reads the optional yaml file of bookmarks imported into
// the shell at startup.
package seedfile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of the bookmark seed file
type Loader struct {
	filePath string
}

// NewLoader creates a new seed file loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string { return l.filePath }

// Load reads and parses the seed file. Entries are trimmed; entries without
// an address are dropped, entries without a label use their address.
func (l *Loader) Load() ([]Entry, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmark seed file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse bookmark seed yaml: %w", err)
	}

	entries := make([]Entry, 0, len(file.Bookmarks))
	for _, e := range file.Bookmarks {
		e.Label = strings.TrimSpace(e.Label)
		e.Address = strings.TrimSpace(e.Address)
		if e.Address == "" {
			continue
		}
		if e.Label == "" {
			e.Label = e.Address
		}
		entries = append(entries, e)
	}
	return entries, nil
}
