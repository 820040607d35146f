package store

import (
	"encoding/json"
	"time"

	"github.com/spf13/afero"
)

// Metadata describes one generation of the data directory.
type Metadata struct {
	CreatedAt      time.Time `json:"created_at"`
	Generator      string    `json:"generator"`
	Format         Format    `json:"format"`
	Sources        []Source  `json:"sources"`
	Locales        []string  `json:"locales"`
	CountriesCount int       `json:"countries_count"`
	FilesWritten   int       `json:"files_written"`
}

// NewMetadata creates a new metadata instance.
func NewMetadata() *Metadata {
	return &Metadata{
		CreatedAt: time.Now().UTC(),
		Generator: "golang.org/x/text/language/display",
		Format:    FormatJSON,
	}
}

// Save writes metadata to a file.
func (m *Metadata) Save(fs afero.Fs, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, data, 0o644)
}

// LoadMetadata loads metadata from a file.
func LoadMetadata(fs afero.Fs, path string) (*Metadata, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return &m, nil
}
