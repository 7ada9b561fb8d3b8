package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/tui-smartlist/internal/model"
)

// codec turns documents into bytes and back
type codec struct {
	name      string
	marshal   func(doc *model.Document) ([]byte, error)
	unmarshal func(data []byte, doc *model.Document) error
}

// FileStore handles file persistence of list documents
type FileStore struct {
	FilePath string
	ReadOnly bool

	codec codec
}

// NewStore picks the store for filePath by its extension. YAML files use
// .yaml or .yml; everything else is JSON.
func NewStore(filePath string) *FileStore {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return NewYAMLStore(filePath)
	}
	return NewJSONStore(filePath)
}

func newFileStore(filePath string, c codec) *FileStore {
	return &FileStore{
		FilePath: filePath,
		ReadOnly: IsBackupFile(filePath),
		codec:    c,
	}
}

// Format returns the name of the file format
func (s *FileStore) Format() string {
	return s.codec.name
}

// Load loads a document from the file. A missing file gives an empty
// document titled after the file name.
func (s *FileStore) Load() (*model.Document, error) {
	s.ReadOnly = IsBackupFile(s.FilePath)
	if s.ReadOnly {
		doc, _, err := LoadBackup(s.FilePath)
		return doc, err
	}

	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewDocument(titleFromPath(s.FilePath)), nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc model.Document
	if err := s.codec.unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.codec.name, err)
	}
	if doc.Items == nil {
		doc.Items = make([]*model.ListItem, 0)
	}

	return &doc, nil
}

// Save writes the document to the file. The data is written to a temporary
// file first and renamed over the target.
func (s *FileStore) Save(doc *model.Document) error {
	if s.ReadOnly {
		return fmt.Errorf("file is read-only: %s", s.FilePath)
	}
	if s.FilePath == "" {
		return fmt.Errorf("no file name")
	}

	dir := filepath.Dir(s.FilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := s.codec.marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", s.codec.name, err)
	}

	tmp := s.FilePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, s.FilePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace file: %w", err)
	}

	return nil
}

// FileExists checks if the document file exists
func (s *FileStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}

func titleFromPath(path string) string {
	if path == "" {
		return "Untitled"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
