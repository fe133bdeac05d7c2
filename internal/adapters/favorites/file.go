// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package favorites

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/janderssonse/osusume/internal/domain"
	"github.com/janderssonse/osusume/internal/platform"
	"github.com/pelletier/go-toml/v2"
)

// fileDocument is the TOML layout of the favorites file.
type fileDocument struct {
	Favorites []fileRecord `toml:"favorites"`
}

type fileRecord struct {
	Name        string    `toml:"name"`
	Reason      string    `toml:"reason"`
	Features    []string  `toml:"features"`
	ImageURL    string    `toml:"image_url"`
	OfficialURL string    `toml:"official_url"`
	AddedAt     time.Time `toml:"added_at"`
}

// File stores favorites in a TOML file. Writes are serialised across
// processes with an advisory lock next to the file.
type File struct {
	path string
	lock *flock.Flock
	now  func() time.Time

	// op serialises file operations inside this process; the flock only
	// excludes other processes.
	op sync.Mutex

	mu      sync.RWMutex
	records []fileRecord
}

// OpenFile opens or creates the favorites file at path.
func OpenFile(path string) (*File, error) {
	if err := platform.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("failed to create favorites directory: %w", err)
	}

	store := &File{
		path: path,
		lock: flock.New(path + ".lock"),
		now:  time.Now,
	}

	if err := store.reload(); err != nil {
		return nil, err
	}

	return store, nil
}

// Path returns the favorites file location.
func (f *File) Path() string {
	return f.path
}

// IsFavorite implements domain.FavoritesStore using the last loaded state.
func (f *File) IsFavorite(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.index(name) >= 0
}

// Toggle implements domain.FavoritesStore.
func (f *File) Toggle(item domain.RecommendationItem) (bool, error) {
	if item.Name == "" {
		return false, domain.ErrInvalidItem
	}

	var favorite bool

	err := f.update(func(records []fileRecord) []fileRecord {
		for i, record := range records {
			if record.Name == item.Name {
				favorite = false

				return slices.Delete(records, i, i+1)
			}
		}

		favorite = true

		return append(records, fileRecord{
			Name:        item.Name,
			Reason:      item.Reason,
			Features:    item.Features,
			ImageURL:    item.ImageURL,
			OfficialURL: item.OfficialURL,
			AddedAt:     f.now().UTC(),
		})
	})

	return favorite, err
}

// List implements domain.FavoritesStore. It rereads the file so changes made
// by other processes are visible.
func (f *File) List() ([]domain.RecommendationItem, error) {
	f.op.Lock()
	defer f.op.Unlock()

	if err := f.lock.RLock(); err != nil {
		return nil, fmt.Errorf("failed to lock favorites: %w", err)
	}

	defer func() {
		_ = f.lock.Unlock()
	}()

	if err := f.reload(); err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	items := make([]domain.RecommendationItem, 0, len(f.records))
	for _, record := range f.records {
		items = append(items, domain.RecommendationItem{
			Name:        record.Name,
			Reason:      record.Reason,
			Features:    record.Features,
			ImageURL:    record.ImageURL,
			OfficialURL: record.OfficialURL,
		})
	}

	return items, nil
}

// Clear implements domain.FavoritesStore.
func (f *File) Clear() error {
	return f.update(func([]fileRecord) []fileRecord { return nil })
}

// Close implements io.Closer.
func (f *File) Close() error {
	return nil
}

// update reloads, applies change and writes back while holding the file lock.
func (f *File) update(change func([]fileRecord) []fileRecord) error {
	f.op.Lock()
	defer f.op.Unlock()

	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock favorites: %w", err)
	}

	defer func() {
		_ = f.lock.Unlock()
	}()

	if err := f.reload(); err != nil {
		return err
	}

	f.mu.RLock()
	records := change(slices.Clone(f.records))
	f.mu.RUnlock()

	if err := f.write(records); err != nil {
		return err
	}

	f.mu.Lock()
	f.records = records
	f.mu.Unlock()

	return nil
}

func (f *File) reload() error {
	data, err := os.ReadFile(f.path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		data = nil
	case err != nil:
		return fmt.Errorf("failed to read favorites: %w", err)
	}

	var doc fileDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse favorites %s: %w", f.path, err)
	}

	f.mu.Lock()
	f.records = doc.Favorites
	f.mu.Unlock()

	return nil
}

// write replaces the file atomically.
func (f *File) write(records []fileRecord) error {
	data, err := toml.Marshal(fileDocument{Favorites: records})
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}

	if err := platform.WriteFileAtomic(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}

	return nil
}

func (f *File) index(name string) int {
	for i, record := range f.records {
		if record.Name == name {
			return i
		}
	}

	return -1
}
