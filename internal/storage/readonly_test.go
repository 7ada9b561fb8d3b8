package storage

import (
	"path/filepath"
	"testing"
)

func TestIsBackupFileDetection(t *testing.T) {
	backupDir := GetBackupDir()

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{
			name:     "Empty path",
			path:     "",
			expected: false,
		},
		{
			name:     "Regular file",
			path:     "/tmp/mylist.json",
			expected: false,
		},
		{
			name:     "Backup file",
			path:     filepath.Join(backupDir, "20251103_150405_abc12345.smartlist"),
			expected: true,
		},
		{
			name:     "File with backup in name but different directory",
			path:     "/tmp/backups/20251103_150405_abc12345.smartlist",
			expected: false,
		},
		{
			name:     "Other file in backup directory",
			path:     filepath.Join(backupDir, "notes.json"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsBackupFile(tt.path)
			if result != tt.expected {
				t.Errorf("IsBackupFile(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestStoreReadOnlyDetection(t *testing.T) {
	backupDir := GetBackupDir()

	tests := []struct {
		name             string
		filePath         string
		expectedReadOnly bool
	}{
		{
			name:             "Regular file is not readonly",
			filePath:         "/tmp/mylist.json",
			expectedReadOnly: false,
		},
		{
			name:             "Backup file is readonly",
			filePath:         filepath.Join(backupDir, "20251103_150405_abc12345.smartlist"),
			expectedReadOnly: true,
		},
		{
			name:             "Empty file path is not readonly",
			filePath:         "",
			expectedReadOnly: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(tt.filePath)
			if store.ReadOnly != tt.expectedReadOnly {
				t.Errorf("NewStore(%q).ReadOnly = %v, want %v",
					tt.filePath, store.ReadOnly, tt.expectedReadOnly)
			}
		})
	}
}

func TestSaveRefusesReadOnly(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "list.json"))
	store.ReadOnly = true

	if err := store.Save(nil); err == nil {
		t.Errorf("Expected Save to fail on a read-only store")
	}
}
