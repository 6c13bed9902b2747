// Package blob stores ingested file content under a store directory.
//
// Blobs live at orig/<p>/<name> and thumbnails at thumb/<p>/<name>,
// where p is the first two characters of the name. The shard prefix
// keeps directory fan-out manageable for large catalogs.
package blob

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type Store struct {
	origDir  string
	thumbDir string
}

func Open(basedir string) (*Store, error) {
	origDir := filepath.Join(basedir, "orig")
	if err := os.MkdirAll(origDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create orig directory: %w", err)
	}
	thumbDir := filepath.Join(basedir, "thumb")
	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create thumb directory: %w", err)
	}
	return &Store{origDir: origDir, thumbDir: thumbDir}, nil
}

func shardPath(dir, name string) (string, error) {
	if len(name) <= 2 {
		return "", fmt.Errorf("blob name %q too short", name)
	}
	shard := filepath.Join(dir, name[:2])
	if err := os.MkdirAll(shard, 0755); err != nil {
		return "", fmt.Errorf("failed to create shard directory: %w", err)
	}
	return filepath.Join(shard, name), nil
}

// OrigPath returns the blob path for name, creating the shard
// directory if needed.
func (s *Store) OrigPath(name string) (string, error) {
	return shardPath(s.origDir, name)
}

// ThumbPath returns the thumbnail path for name, creating the shard
// directory if needed.
func (s *Store) ThumbPath(name string) (string, error) {
	return shardPath(s.thumbDir, name)
}

// CopyIn copies the file at src into the blob store under name.
func (s *Store) CopyIn(src, name string) error {
	dst, err := s.OrigPath(name)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create blob: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to copy blob: %w", err)
	}
	return out.Close()
}

// WriteThumb writes thumbnail bytes under name.
func (s *Store) WriteThumb(name string, data []byte) error {
	dst, err := s.ThumbPath(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("failed to write thumbnail: %w", err)
	}
	return nil
}

// HasOrig reports whether the blob for name exists on disk.
func (s *Store) HasOrig(name string) bool {
	if len(name) <= 2 {
		return false
	}
	_, err := os.Stat(filepath.Join(s.origDir, name[:2], name))
	return err == nil
}

// Remove deletes the blob and its thumbnail, if present. Missing
// files are not an error.
func (s *Store) Remove(origName, thumbName string) error {
	if len(origName) > 2 {
		if err := os.Remove(filepath.Join(s.origDir, origName[:2], origName)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove blob: %w", err)
		}
	}
	if len(thumbName) > 2 {
		if err := os.Remove(filepath.Join(s.thumbDir, thumbName[:2], thumbName)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove thumbnail: %w", err)
		}
	}
	return nil
}

// Hash streams the file at path and returns its size and hex SHA-1.
func Hash(path string) (int64, string, error) {
	fp, err := os.Open(path)
	if err != nil {
		return 0, "", fmt.Errorf("failed to open file for hashing: %w", err)
	}
	defer fp.Close()

	h := sha1.New()
	size, err := io.Copy(h, fp)
	if err != nil {
		return 0, "", fmt.Errorf("failed to hash file: %w", err)
	}
	return size, hex.EncodeToString(h.Sum(nil)), nil
}
