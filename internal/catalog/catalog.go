// Package catalog implements the fdb store: deduplicated blob
// ingestion plus SQLite-backed metadata.
package catalog

import (
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"fdb/internal/blob"
	"fdb/internal/config"
	"fdb/internal/db"
	"fdb/internal/logger"
	"fdb/internal/media"
	"fdb/pkg/models"
)

// metadataName is the SQLite database file inside a store directory.
const metadataName = "metadata.db"

var wordsRE = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Words splits text into lowercased word tokens, used to derive tags
// from source paths.
func Words(text string) []string {
	var words []string
	for _, w := range wordsRE.FindAllString(text, -1) {
		words = append(words, strings.ToLower(w))
	}
	return words
}

type Catalog struct {
	db        *db.Store
	blobs     *blob.Store
	cfg       config.Config
	dryRun    bool
	thumbSize int
}

// Open opens (creating if necessary) the store at basedir.
func Open(basedir string, cfg config.Config, dryRun bool) (*Catalog, error) {
	if err := os.MkdirAll(basedir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	blobs, err := blob.Open(basedir)
	if err != nil {
		return nil, err
	}

	store, err := db.New(filepath.Join(basedir, metadataName))
	if err != nil {
		return nil, err
	}

	thumbSize := cfg.ThumbSize
	if thumbSize <= 0 {
		thumbSize = media.DefaultThumbSize
	}

	return &Catalog{
		db:        store,
		blobs:     blobs,
		cfg:       cfg,
		dryRun:    dryRun,
		thumbSize: thumbSize,
	}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// thumbName maps a blob name to its thumbnail name.
func thumbName(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName)) + ".jpg"
}

// Add ingests a single file. If content identical to path is already
// cataloged the existing entry is returned and added is false.
func (c *Catalog) Add(path string, tags []string) (entry *models.Entry, added bool, err error) {
	size, hash, err := blob.Hash(path)
	if err != nil {
		return nil, false, err
	}

	existing, err := c.db.FindByContent(size, hash)
	if err == nil {
		logger.Info("ignored duplicate", "path", path, "entry", existing.ID)
		return existing, false, nil
	}
	if err != db.ErrNotFound {
		return nil, false, err
	}

	logger.Info("adding", "path", path, "size", size)

	u := uuid.New()
	fileName := hex.EncodeToString(u[:]) + strings.ToLower(filepath.Ext(path))
	fileType := media.DetectType(path)

	entry = &models.Entry{
		FileName: fileName,
		FileType: fileType,
		FileSize: size,
		FileHash: hash,
	}
	if err := c.db.InsertEntry(entry); err != nil {
		return nil, false, err
	}

	if !c.dryRun {
		if err := c.blobs.CopyIn(path, fileName); err != nil {
			return nil, false, err
		}
	}

	attrs := []models.Attr{{Name: "path", Value: path}}
	for _, w := range Words(path) {
		attrs = append(attrs, models.Attr{Name: "tag", Value: w})
	}
	for _, t := range tags {
		attrs = append(attrs, models.Attr{Name: "tag", Value: t})
	}

	info := media.Identify(path, fileType, c.thumbSize)
	attrs = append(attrs, info.Attrs...)

	timestamp := info.Timestamp
	if timestamp == "" {
		st, err := os.Stat(path)
		if err != nil {
			return nil, false, err
		}
		timestamp = st.ModTime().Format(models.TimeLayout)
	}
	if err := c.db.SetTimestamp(entry.ID, timestamp); err != nil {
		return nil, false, err
	}
	entry.Timestamp = timestamp
	attrs = append(attrs, models.Attr{Name: "timestamp", Value: timestamp})

	if err := c.db.AddAttrs(entry.ID, attrs); err != nil {
		return nil, false, err
	}

	if !c.dryRun && info.Thumbnail != nil {
		if err := c.blobs.WriteThumb(thumbName(fileName), info.Thumbnail); err != nil {
			return nil, false, err
		}
	}

	if err := c.db.LogAction(entry.ID, "add"); err != nil {
		return nil, false, err
	}
	return entry, true, nil
}

// AddPaths ingests files and directories. Directories are walked
// recursively; dotfiles and configured ignore patterns are skipped.
// Returns the number of entries actually added.
func (c *Catalog) AddPaths(paths []string, tags []string) (int, error) {
	added := 0
	for _, path := range paths {
		st, err := os.Stat(path)
		if err != nil {
			return added, fmt.Errorf("cannot access %s: %w", path, err)
		}

		if !st.IsDir() {
			_, ok, err := c.Add(path, tags)
			if err != nil {
				return added, err
			}
			if ok {
				added++
			}
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || c.cfg.Ignored(name) {
				logger.Debug("skipping", "path", p)
				return nil
			}
			_, ok, err := c.Add(p, tags)
			if err != nil {
				return err
			}
			if ok {
				added++
			}
			return nil
		})
		if err != nil {
			return added, err
		}
	}
	return added, nil
}

// List returns entries newest first, with their attributes. A
// non-empty tag filters; limit <= 0 means all.
func (c *Catalog) List(limit int, tag string) ([]models.EntryDetail, error) {
	entries, err := c.db.ListEntries(limit, tag)
	if err != nil {
		return nil, err
	}

	details := make([]models.EntryDetail, 0, len(entries))
	for _, e := range entries {
		attrs, err := c.db.Attrs(e.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, models.EntryDetail{Entry: e, Attrs: attrs})
	}
	return details, nil
}

// Show returns one entry with its attributes.
func (c *Catalog) Show(id int64) (*models.EntryDetail, error) {
	entry, err := c.db.GetEntry(id)
	if err != nil {
		return nil, err
	}
	attrs, err := c.db.Attrs(id)
	if err != nil {
		return nil, err
	}
	return &models.EntryDetail{Entry: *entry, Attrs: attrs}, nil
}

// Actions returns the action log of one entry.
func (c *Catalog) Actions(id int64) ([]models.Action, error) {
	if _, err := c.db.GetEntry(id); err != nil {
		return nil, err
	}
	return c.db.Actions(id)
}

// Tag appends tags to an existing entry.
func (c *Catalog) Tag(id int64, tags []string) error {
	if _, err := c.db.GetEntry(id); err != nil {
		return err
	}
	attrs := make([]models.Attr, 0, len(tags))
	for _, t := range tags {
		attrs = append(attrs, models.Attr{Name: "tag", Value: t})
	}
	if err := c.db.AddAttrs(id, attrs); err != nil {
		return err
	}
	return c.db.LogAction(id, "tag")
}

// Remove deletes an entry, its metadata and its blob files.
func (c *Catalog) Remove(id int64) error {
	entry, err := c.db.GetEntry(id)
	if err != nil {
		return err
	}
	if err := c.db.DeleteEntry(id); err != nil {
		return err
	}
	if c.dryRun {
		return nil
	}
	return c.blobs.Remove(entry.FileName, thumbName(entry.FileName))
}

// Orphan is a database row whose blob is missing on disk.
type Orphan struct {
	ID       int64
	FileName string
}

// Cleanup deletes entries whose blob no longer exists and returns
// them.
func (c *Catalog) Cleanup() ([]Orphan, error) {
	names, err := c.db.ListFileNames()
	if err != nil {
		return nil, err
	}

	var removed []Orphan
	for id, name := range names {
		if c.blobs.HasOrig(name) {
			continue
		}
		if err := c.db.DeleteEntry(id); err != nil {
			return removed, fmt.Errorf("failed to delete record %d: %w", id, err)
		}
		removed = append(removed, Orphan{ID: id, FileName: name})
	}
	return removed, nil
}

// BlobPath returns the on-disk path of an entry's blob.
func (c *Catalog) BlobPath(id int64) (string, error) {
	entry, err := c.db.GetEntry(id)
	if err != nil {
		return "", err
	}
	return c.blobs.OrigPath(entry.FileName)
}
