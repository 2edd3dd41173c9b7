package local_fs

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Config struct {
	SavePath string `yaml:"save-path" default:"storage/media"`
}

type LocalFS struct {
	Config *Config
}

func NewClient(cfg *Config) (*LocalFS, error) {
	if cfg == nil {
		return nil, errors.New("local fs config is required")
	}
	if cfg.SavePath == "" {
		cfg.SavePath = "storage/media"
	}
	if err := os.MkdirAll(cfg.SavePath, 0754); err != nil {
		return nil, errors.Wrap(err, "create media save path failed")
	}
	return &LocalFS{Config: cfg}, nil
}

func (p *LocalFS) getSavePath() string {
	return p.Config.SavePath
}

// safeJoin resolves fileKey under the save path and rejects traversal out
// of it.
func (p *LocalFS) safeJoin(fileKey string) (string, error) {
	cleaned := filepath.Clean("/" + fileKey)
	dst := filepath.Join(p.getSavePath(), cleaned)
	base := filepath.Clean(p.getSavePath())
	if dst != base && !strings.HasPrefix(dst, base+string(os.PathSeparator)) {
		return "", errors.Errorf("file key %q escapes the save path", fileKey)
	}
	return dst, nil
}

// SendContent writes bytes under the save path and returns the stored key.
// The bytes land in a ".tmp" file first and are renamed into place, so a
// crash mid-write never leaves a truncated file under the final key.
func (p *LocalFS) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {
	dst, err := p.safeJoin(fileKey)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0754); err != nil {
		return "", errors.Wrap(err, "create media directory failed")
	}
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return "", errors.Wrap(err, "write media file failed")
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return "", errors.Wrap(err, "rename media file failed")
	}
	if !modTime.IsZero() {
		_ = os.Chtimes(dst, modTime, modTime)
	}
	return fileKey, nil
}

// ReadContent reads a stored file's bytes.
func (p *LocalFS) ReadContent(fileKey string) ([]byte, error) {
	dst, err := p.safeJoin(fileKey)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(dst)
}

// Delete removes a stored file; deleting a missing file is not an error.
func (p *LocalFS) Delete(fileKey string) error {
	dst, err := p.safeJoin(fileKey)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(dst); statErr != nil {
		if os.IsNotExist(statErr) {
			return nil
		}
		return statErr
	}
	return os.Remove(dst)
}

// List returns the keys of all stored files relative to the save path.
func (p *LocalFS) List() ([]string, error) {
	var keys []string
	base := p.getSavePath()
	err := filepath.Walk(base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}
