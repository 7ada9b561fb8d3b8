package app

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/pstuifzand/tui-smartlist/internal/diff"
	"github.com/pstuifzand/tui-smartlist/internal/storage"
)

const backupTimeFormat = "2006-01-02 15:04:05"

// listBackups returns the backups of the open file, newest first
func (a *App) listBackups() ([]storage.BackupMetadata, error) {
	if a.backups == nil {
		return nil, fmt.Errorf("backups are not available")
	}
	backups, err := a.backups.FindBackupsForFile(a.store.FilePath)
	if err != nil {
		return nil, err
	}
	if len(backups) == 0 {
		return nil, fmt.Errorf("no backups found for this file")
	}
	for i, j := 0, len(backups)-1; i < j; i, j = i+1, j-1 {
		backups[i], backups[j] = backups[j], backups[i]
	}
	return backups, nil
}

// backupArg resolves the 1-based backup number in args, default newest
func (a *App) backupArg(args []string) (storage.BackupMetadata, error) {
	backups, err := a.listBackups()
	if err != nil {
		return storage.BackupMetadata{}, err
	}
	n := 1
	if len(args) > 0 {
		if n, err = strconv.Atoi(args[0]); err != nil || n < 1 || n > len(backups) {
			return storage.BackupMetadata{}, fmt.Errorf("backup number must be between 1 and %d", len(backups))
		}
	}
	return backups[n-1], nil
}

// handleBackupsCommand shows the backups of the open file
func (a *App) handleBackupsCommand() {
	backups, err := a.listBackups()
	if err != nil {
		a.SetError(err.Error())
		return
	}
	lines := make([]string, 0, len(backups)+2)
	for i, b := range backups {
		lines = append(lines, fmt.Sprintf("%3d  %s  session %s", i+1, b.Timestamp.Format(backupTimeFormat), b.SessionID))
	}
	lines = append(lines, "", ":diff N compares, :restore N restores")
	a.viewer.ShowText("Backups of "+filepath.Base(a.store.FilePath), lines)
}

// handleDiffCommand shows the changes from a backup to the current list
func (a *App) handleDiffCommand(args []string) {
	backup, err := a.backupArg(args)
	if err != nil {
		a.SetError(err.Error())
		return
	}
	doc, _, err := storage.LoadBackup(backup.FilePath)
	if err != nil {
		a.SetError(err.Error())
		return
	}
	result := diff.ComputeDiff(doc.Items, a.session.Items())
	a.viewer.Show(result, backup.Timestamp.Format(backupTimeFormat), "current")
}

// handleRestoreCommand replaces the list with a backup. The restore can
// be undone.
func (a *App) handleRestoreCommand(args []string) {
	backup, err := a.backupArg(args)
	if err != nil {
		a.SetError(err.Error())
		return
	}
	doc, _, err := storage.LoadBackup(backup.FilePath)
	if err != nil {
		a.SetError(err.Error())
		return
	}
	if a.store.ReadOnly {
		a.SetError("Read-only: this is a backup")
		return
	}
	a.editor = nil
	a.search.Stop()
	a.undo.Push("restore", a.session.Items())
	a.restoreSnapshot("Restored backup from "+backup.Timestamp.Format(backupTimeFormat), doc.Items)
}
