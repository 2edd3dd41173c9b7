// Package storage abstracts where media bytes live. The collection is a
// local-first store, so the local filesystem backend is the only one wired;
// the interface keeps the media service independent of the backend.
package storage

import (
	"time"

	"github.com/ankibridge/ankibridge-service/pkg/storage/local_fs"

	"github.com/pkg/errors"
)

type Type = string

const LOCAL Type = "localfs"

var StorageTypeMap = map[Type]bool{
	LOCAL: true,
}

// Config unified storage configuration.
type Config struct {
	Type Type `yaml:"type" default:"localfs"`

	// Local FS
	SavePath string `yaml:"save-path" default:"storage/media"`
}

// Storager is the media byte store.
type Storager interface {
	SendContent(fileKey string, content []byte, modTime time.Time) (string, error)
	ReadContent(fileKey string) ([]byte, error)
	Delete(fileKey string) error
	List() ([]string, error)
}

func NewClient(config *Config) (Storager, error) {
	if config == nil {
		return nil, errors.New("storage config is required")
	}
	switch config.Type {
	case LOCAL, "":
		return local_fs.NewClient(&local_fs.Config{
			SavePath: config.SavePath,
		})
	}
	return nil, errors.Errorf("unsupported storage type %q", config.Type)
}
