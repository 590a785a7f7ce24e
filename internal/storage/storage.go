// Package storage manages the workspace folder shared by svmhmm commands.
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/happyhackingspace/svmhmm/hmm"
	"github.com/happyhackingspace/svmhmm/internal/vectorizer"
)

// File names inside the workspace folder.
const (
	TagsFile       = "tags.msgpack"
	ConfigFile     = "config.yaml"
	FeaturizerFile = "featurizer.msgpack"
)

const tagsVersion = 1

// ErrNoTags is returned by LoadTags when no snapshot has been saved.
var ErrNoTags = errors.New("storage: no tag snapshot")

// Storage wraps the workspace folder.
type Storage struct {
	Folder string
}

// NewStorage creates a Storage for the given folder.
func NewStorage(folder string) *Storage {
	return &Storage{Folder: folder}
}

// tagSnapshot is the on-disk form of a registry. Tags[i] has id i.
type tagSnapshot struct {
	Version int      `msgpack:"version"`
	Tags    []string `msgpack:"tags"`
}

// Path returns the path of name inside the folder.
func (s *Storage) Path(name string) string {
	return filepath.Join(s.Folder, name)
}

// ConfigPath returns the default learning parameter file.
func (s *Storage) ConfigPath() string {
	return s.Path(ConfigFile)
}

// SaveTags writes every tag in reg, in id order.
func (s *Storage) SaveTags(reg *hmm.Registry) error {
	snap := tagSnapshot{Version: tagsVersion, Tags: reg.Tags()}
	data, err := msgpack.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("storage: encode tags: %w", err)
	}
	if err := s.writeFile(TagsFile, data); err != nil {
		return err
	}
	slog.Debug("Saved tags", "path", s.Path(TagsFile), "tags", len(snap.Tags))
	return nil
}

// LoadTags restores a registry saved with SaveTags. Ids are preserved.
func (s *Storage) LoadTags() (*hmm.Registry, error) {
	data, err := os.ReadFile(s.Path(TagsFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoTags
	}
	if err != nil {
		return nil, err
	}
	var snap tagSnapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("storage: decode tags: %w", err)
	}
	if snap.Version != tagsVersion {
		return nil, fmt.Errorf("storage: unsupported tag snapshot version %d", snap.Version)
	}
	return hmm.RestoreRegistry(snap.Tags)
}

// LoadOrNewTags is LoadTags, falling back to an empty registry when nothing
// has been saved yet.
func (s *Storage) LoadOrNewTags() (*hmm.Registry, error) {
	reg, err := s.LoadTags()
	if errors.Is(err, ErrNoTags) {
		return hmm.NewRegistry(), nil
	}
	return reg, err
}

// SaveFeaturizer writes a fitted featurizer.
func (s *Storage) SaveFeaturizer(f *vectorizer.Featurizer) error {
	if err := os.MkdirAll(s.Folder, 0755); err != nil {
		return err
	}
	file, err := os.Create(s.Path(FeaturizerFile))
	if err != nil {
		return err
	}
	if err := f.Encode(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// LoadFeaturizer reads a featurizer written by SaveFeaturizer.
func (s *Storage) LoadFeaturizer() (*vectorizer.Featurizer, error) {
	file, err := os.Open(s.Path(FeaturizerFile))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()
	return vectorizer.DecodeFeaturizer(file)
}

func (s *Storage) writeFile(name string, data []byte) error {
	if err := os.MkdirAll(s.Folder, 0755); err != nil {
		return err
	}
	tmp := s.Path(name + ".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path(name))
}
