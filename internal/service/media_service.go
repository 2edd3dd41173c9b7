package service

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/internal/search"
	"github.com/ankibridge/ankibridge-service/pkg/code"
	"github.com/ankibridge/ankibridge-service/pkg/errors"
	"github.com/ankibridge/ankibridge-service/pkg/logger"
	"github.com/ankibridge/ankibridge-service/pkg/util"

	"go.uber.org/zap"
)

// StoreMediaFile saves base64 encoded bytes under filename and returns the
// name the file was stored as. With replaceExisting off, a name clash gets
// a checksum suffix instead of overwriting.
func (s *Service) StoreMediaFile(ctx context.Context, filename string, data string, replaceExisting bool) (string, error) {
	if err := validateMediaFilename(filename); err != nil {
		return "", err
	}
	content, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", errors.NewAppError(code.ErrorInvalidParams, err).WithDetails("data is not valid base64")
	}

	if s.cfg.MaxMediaBytes > 0 && int64(len(content)) > s.cfg.MaxMediaBytes {
		return "", errors.NewAppError(code.ErrorMediaTooLarge, nil)
	}

	sha1sum := util.EncodeSHA1Bytes(content)

	if !replaceExisting {
		existing, err := s.media.GetByFilename(ctx, filename)
		if err != nil {
			return "", errors.NewAppError(code.ErrorServerInternal, err)
		}
		if existing != nil {
			if existing.Sha1 == sha1sum {
				return filename, nil
			}
			ext := filepath.Ext(filename)
			filename = strings.TrimSuffix(filename, ext) + "-" + sha1sum[:8] + ext
		}
	}

	if _, err := s.store.SendContent(filename, content, timeNow()); err != nil {
		return "", errors.NewAppError(code.ErrorMediaWrite, err)
	}
	_, err = s.media.Upsert(ctx, &domain.MediaFile{
		Filename: filename,
		Sha1:     sha1sum,
		Size:     int64(len(content)),
	})
	if err != nil {
		return "", errors.NewAppError(code.ErrorServerInternal, err)
	}

	s.logger.Info("media stored",
		zap.String(logger.FieldFilename, filename),
		zap.Int(logger.FieldSize, len(content)),
	)
	return filename, nil
}

// RetrieveMediaFile returns a stored file's bytes base64 encoded.
// Concurrent reads of the same file share one disk read.
func (s *Service) RetrieveMediaFile(ctx context.Context, filename string) (string, error) {
	if err := validateMediaFilename(filename); err != nil {
		return "", err
	}
	mf, err := s.media.GetByFilename(ctx, filename)
	if err != nil {
		return "", errors.NewAppError(code.ErrorServerInternal, err)
	}
	if mf == nil {
		return "", errors.NewAppError(code.ErrorMediaNotFound, nil).WithDetails(filename)
	}

	encoded, err, _ := s.mediaGroup.Do(filename, func() (interface{}, error) {
		content, err := s.store.ReadContent(filename)
		if err != nil {
			return nil, err
		}
		return base64.StdEncoding.EncodeToString(content), nil
	})
	if err != nil {
		return "", errors.NewAppError(code.ErrorMediaNotFound, err).WithDetails(filename)
	}
	return encoded.(string), nil
}

// GetMediaFilesNames lists stored filenames matching the wildcard pattern.
// An empty pattern lists everything.
func (s *Service) GetMediaFilesNames(ctx context.Context, pattern string) ([]string, error) {
	files, err := s.media.List(ctx)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		if pattern == "" || search.WildcardMatch(pattern, f.Filename) {
			names = append(names, f.Filename)
		}
	}
	return names, nil
}

// DeleteMediaFile removes a stored file and its metadata. Deleting a
// missing file is a no-op.
func (s *Service) DeleteMediaFile(ctx context.Context, filename string) error {
	if err := validateMediaFilename(filename); err != nil {
		return err
	}
	if err := s.store.Delete(filename); err != nil {
		return errors.NewAppError(code.ErrorServerInternal, err)
	}
	if err := s.media.DeleteByFilename(ctx, filename); err != nil {
		return errors.NewAppError(code.ErrorServerInternal, err)
	}
	return nil
}

// validateMediaFilename rejects empty names and anything that escapes the
// media directory.
func validateMediaFilename(filename string) error {
	if filename == "" ||
		strings.Contains(filename, "..") ||
		strings.ContainsAny(filename, "/\\") {
		return errors.NewAppError(code.ErrorMediaFilename, nil).WithDetails(filename)
	}
	return nil
}
