package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ncruces/go-strftime"
	"github.com/pstuifzand/tui-smartlist/internal/model"
)

const (
	backupExt        = ".smartlist"
	backupTimeFormat = "%Y%m%d_%H%M%S"
	backupTimeLayout = "20060102_150405"
	sessionIDLen     = 8
)

// backupFile is the on-disk form of a backup
type backupFile struct {
	OriginalFilename string          `json:"originalFilename"`
	Document         *model.Document `json:"document"`
}

// BackupManager handles backup creation for list files
type BackupManager struct {
	backupDir string
}

// NewBackupManager creates a backup manager for the standard directory
func NewBackupManager() (*BackupManager, error) {
	return NewBackupManagerInDir(getBackupDir())
}

// NewBackupManagerInDir creates a backup manager writing to dir
func NewBackupManagerInDir(dir string) (*BackupManager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	return &BackupManager{
		backupDir: dir,
	}, nil
}

// NewSessionID returns a short random id that groups the backups of one run
func NewSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:sessionIDLen]
}

// CreateBackup writes a timestamped copy of doc together with the absolute
// path of the file it belongs to. It returns the backup path.
func (bm *BackupManager) CreateBackup(doc *model.Document, originalPath string, sessionID string) (string, error) {
	absPath, err := filepath.Abs(originalPath)
	if err != nil {
		absPath = originalPath
	}

	data, err := json.MarshalIndent(backupFile{OriginalFilename: absPath, Document: doc}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup JSON: %w", err)
	}

	backupPath := filepath.Join(bm.backupDir, bm.generateBackupFilename(time.Now(), sessionID))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	return backupPath, nil
}

// generateBackupFilename creates a filename in the format: YYYYMMDD_HHMMSS_<sessionID>.smartlist
func (bm *BackupManager) generateBackupFilename(t time.Time, sessionID string) string {
	return fmt.Sprintf("%s_%s%s", strftime.Format(backupTimeFormat, t), sessionID, backupExt)
}

// getBackupDir returns the path to the backup directory
func getBackupDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".tui-smartlist", "backups")
	}
	return filepath.Join(homeDir, ".local", "share", "tui-smartlist", "backups")
}

// GetBackupDir is a public function to get the backup directory
func GetBackupDir() string {
	return getBackupDir()
}

// IsBackupFile reports whether path names a file in the backup directory.
// Backups are opened read-only.
func IsBackupFile(path string) bool {
	if path == "" || !strings.HasSuffix(path, backupExt) {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return filepath.Dir(absPath) == filepath.Clean(getBackupDir())
}

// LoadBackup reads a backup and returns its document and original path
func LoadBackup(path string) (*model.Document, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read backup file: %w", err)
	}
	var b backupFile
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, "", fmt.Errorf("failed to parse backup file: %w", err)
	}
	if b.Document == nil {
		b.Document = model.NewDocument(titleFromPath(b.OriginalFilename))
	}
	return b.Document, b.OriginalFilename, nil
}

// BackupMetadata holds parsed information about a backup file
type BackupMetadata struct {
	FilePath     string    // Full path to backup file
	Timestamp    time.Time // Parsed timestamp from filename
	SessionID    string    // 8-character session ID
	OriginalFile string    // Original filename stored in backup
}

// FindBackupsForFile returns all backup files for a given original filename, sorted chronologically.
// An empty originalFilePath returns every backup.
func (bm *BackupManager) FindBackupsForFile(originalFilePath string) ([]BackupMetadata, error) {
	entries, err := os.ReadDir(bm.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var searchPath string
	if originalFilePath != "" {
		absPath, err := filepath.Abs(originalFilePath)
		if err != nil {
			searchPath = originalFilePath
		} else {
			searchPath = filepath.Clean(absPath)
		}
	}

	var backups []BackupMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), backupExt) {
			continue
		}

		metadata, err := parseBackupFilename(entry.Name(), filepath.Join(bm.backupDir, entry.Name()))
		if err != nil {
			continue
		}

		if searchPath != "" && filepath.Clean(metadata.OriginalFile) != searchPath {
			continue
		}

		backups = append(backups, metadata)
	}

	sortBackupsByTimestamp(backups)
	return backups, nil
}

// Prune removes all but the newest keep backups of originalFilePath and
// returns how many were removed
func (bm *BackupManager) Prune(originalFilePath string, keep int) (int, error) {
	backups, err := bm.FindBackupsForFile(originalFilePath)
	if err != nil {
		return 0, err
	}
	if keep < 0 {
		keep = 0
	}
	removed := 0
	for len(backups)-removed > keep {
		if err := os.Remove(backups[removed].FilePath); err != nil {
			return removed, fmt.Errorf("failed to remove backup: %w", err)
		}
		removed++
	}
	return removed, nil
}

// parseBackupFilename extracts metadata from a backup filename
// Expected format: YYYYMMDD_HHMMSS_<sessionID>.smartlist
func parseBackupFilename(filename string, fullPath string) (BackupMetadata, error) {
	stamp := len(backupTimeLayout)
	if len(filename) < stamp+1+sessionIDLen+len(backupExt) {
		return BackupMetadata{}, fmt.Errorf("filename too short")
	}

	timestamp, err := time.ParseInLocation(backupTimeLayout, filename[:stamp], time.Local)
	if err != nil {
		return BackupMetadata{}, fmt.Errorf("invalid timestamp format: %w", err)
	}
	sessionID := filename[stamp+1 : stamp+1+sessionIDLen]

	var originalFile string
	if _, orig, err := LoadBackup(fullPath); err == nil {
		originalFile = orig
	}

	return BackupMetadata{
		FilePath:     fullPath,
		Timestamp:    timestamp,
		SessionID:    sessionID,
		OriginalFile: originalFile,
	}, nil
}

// sortBackupsByTimestamp sorts backups chronologically (oldest first)
func sortBackupsByTimestamp(backups []BackupMetadata) {
	slices.SortFunc(backups, func(a, b BackupMetadata) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(a.FilePath, b.FilePath)
	})
}
