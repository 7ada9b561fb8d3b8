package app

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pstuifzand/tui-smartlist/internal/config"
	"github.com/pstuifzand/tui-smartlist/internal/export"
	import_parser "github.com/pstuifzand/tui-smartlist/internal/import"
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/storage"
	"github.com/sirupsen/logrus"
)

// parseCommand splits a command line into words. Single and double quotes
// group words; a backslash escapes the next character inside quotes.
func parseCommand(input string) []string {
	var parts []string
	var current strings.Builder
	var quote rune
	inWord := false
	escaped := false

	for _, r := range input {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case quote != 0 && r == '\\':
			escaped = true
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				parts = append(parts, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		parts = append(parts, current.String())
	}
	return parts
}

// listSettingAliases maps short commands to list setting keys
var listSettingAliases = map[string]string{
	"filter":   "filter_by_statuses",
	"group":    "group_by_status",
	"number":   "numbering_format",
	"reveal":   "reveal_mode",
	"progress": "progress_summary",
	"tint":     "intensity",
	"detail":   "detail_mode",
	"icons":    "icon_set",
}

// handleCommand executes a command entered on the command line
func (a *App) handleCommand(cmd string) {
	parts := parseCommand(strings.TrimSpace(cmd))
	if len(parts) == 0 {
		return
	}
	name, args := parts[0], parts[1:]
	logrus.Debugf("Command: %s %v", name, args)

	switch name {
	case "q", "quit":
		if a.dirty {
			a.SetError("Unsaved changes (use :q! to discard or :wq to save)")
			return
		}
		a.Quit()
	case "q!":
		a.Quit()
	case "w", "write":
		if len(args) > 0 {
			a.saveAs(args[0])
		}
		if err := a.Save(); err != nil {
			a.SetError("Failed to save: " + err.Error())
		}
	case "wq", "x":
		if len(args) > 0 {
			a.saveAs(args[0])
		}
		if err := a.Save(); err != nil {
			a.SetError("Failed to save: " + err.Error())
			return
		}
		a.Quit()
	case "set":
		a.handleSetCommand(args)
	case "filter", "group", "number", "reveal", "progress", "tint", "detail", "icons":
		key := listSettingAliases[name]
		switch {
		case len(args) == 0 && name == "filter":
			a.applySetting(key, "")
		case len(args) == 0 && name == "group":
			a.applySetting(key, fmt.Sprint(!a.session.Config().GroupByStatus))
		case len(args) == 0 && name == "number":
			a.applySetting("show_numbering", fmt.Sprint(!a.session.Config().ShowNumbering))
		case len(args) == 0:
			a.SetStatus(key + "=" + a.settingValue(key))
		default:
			if name == "number" {
				a.applySetting("show_numbering", "true")
			}
			a.applySetting(key, strings.Join(args, ","))
		}
	case "status":
		a.handleStatusCommand(args)
	case "only":
		if len(args) != 1 {
			a.SetError("Usage: only <status>")
			return
		}
		if a.edit("only "+args[0], func() bool { return a.session.ShowOnlyStatus(args[0]) }) {
			a.SetStatus("Only items with status " + args[0] + " are shown")
		}
	case "showall":
		a.setAllVisible(true)
	case "hideall":
		a.setAllVisible(false)
	case "title":
		if len(args) == 0 {
			a.SetStatus("Title: " + a.doc.Title)
			return
		}
		a.doc.Title = strings.Join(args, " ")
		a.dirty = true
	case "export":
		a.handleExportCommand(args)
	case "import":
		a.handleImportCommand(args)
	case "backups":
		a.handleBackupsCommand()
	case "diff":
		a.handleDiffCommand(args)
	case "restore":
		a.handleRestoreCommand(args)
	case "reload":
		if a.dirty {
			a.SetError("Unsaved changes (use :reload! to discard them)")
			return
		}
		fallthrough
	case "reload!":
		if err := a.reload(); err != nil {
			a.SetError("Failed to reload: " + err.Error())
		}
	case "e", "open", "e!":
		if len(args) == 0 {
			a.SetError("Usage: :e <file>")
			return
		}
		if a.dirty && name != "e!" {
			a.SetError("Unsaved changes (use :e! to discard)")
			return
		}
		if err := a.openFile(args[0]); err != nil {
			a.SetError("Failed to open: " + err.Error())
		}
	case "present":
		a.setMode(PresentMode)
	case "edit":
		a.setMode(EditMode)
	case "messages":
		a.showMessages()
	case "debug":
		a.debugMode = !a.debugMode
		a.SetStatus(fmt.Sprintf("Debug mode: %v", a.debugMode))
	case "help":
		a.help.Toggle()
	default:
		a.SetError("Unknown command: " + name)
	}
	a.refresh()
}

// saveAs switches the list to a new file; the format follows the extension
func (a *App) saveAs(path string) {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	a.store = storage.NewStore(path)
	a.store.ReadOnly = false
	a.dirty = true
}

// handleSetCommand accepts "set", "set key", "set key=value" and
// "set key value"
func (a *App) handleSetCommand(args []string) {
	if len(args) == 0 {
		a.showSettings()
		return
	}
	key, value, hasValue := strings.Cut(args[0], "=")
	if !hasValue && len(args) > 1 {
		value, hasValue = strings.Join(args[1:], " "), true
	}
	if !hasValue {
		a.SetStatus(key + "=" + a.settingValue(key))
		return
	}
	if !isListKey(key) {
		a.cfg.Set(key, value)
		a.SetStatus(key + "=" + value)
		return
	}
	a.applySetting(key, value)
}

func isListKey(key string) bool {
	for _, k := range config.ListKeys {
		if k == key {
			return true
		}
	}
	return false
}

// applySetting changes a list setting for this session
func (a *App) applySetting(key, value string) {
	previous, hadPrevious := a.cfg.GetAll()[key]
	a.cfg.Set(key, value)
	if _, err := a.cfg.ApplyTo(a.session.Config()); err != nil {
		if hadPrevious {
			a.cfg.Set(key, previous)
		} else {
			a.cfg.Unset(key)
		}
		a.SetError(err.Error())
		return
	}
	a.session.SetConfig(a.listConfig())
	a.SetStatus(key + "=" + a.settingValue(key))
}

// settingValue reports the effective value of a list setting
func (a *App) settingValue(key string) string {
	cfg := a.session.Config()
	switch key {
	case "icon_set":
		return cfg.IconSetID
	case "secondary_icon_set":
		return cfg.SecondaryIconSetID
	case "collapse_default":
		return string(cfg.CollapseDefault)
	case "reveal_mode":
		return string(cfg.RevealMode)
	case "show_numbering":
		return fmt.Sprint(cfg.ShowNumbering)
	case "numbering_format":
		return string(cfg.NumberingFormat)
	case "child_numbering_format":
		return string(cfg.ChildNumberingFormat)
	case "filter_by_statuses":
		return strings.Join(cfg.FilterByStatuses, ",")
	case "group_by_status":
		return fmt.Sprint(cfg.GroupByStatus)
	case "conditional_formatting":
		return fmt.Sprint(cfg.ConditionalFormatting)
	case "intensity":
		return string(cfg.Intensity)
	case "progress_summary":
		return string(cfg.ProgressSummary)
	case "detail_mode":
		return string(cfg.DetailMode)
	}
	return a.cfg.Get(key)
}

func (a *App) showSettings() {
	lines := make([]string, 0, len(config.ListKeys)+8)
	for _, key := range config.ListKeys {
		lines = append(lines, fmt.Sprintf("%-24s %s", key, a.settingValue(key)))
	}
	var other []string
	for key := range a.cfg.GetAll() {
		if !isListKey(key) {
			other = append(other, key)
		}
	}
	sort.Strings(other)
	if len(other) > 0 {
		lines = append(lines, "")
		for _, key := range other {
			lines = append(lines, fmt.Sprintf("%-24s %s", key, a.cfg.Get(key)))
		}
	}
	a.viewer.ShowText("Settings", lines)
}

// handleStatusCommand sets the status of the selected item; "none" clears it
func (a *App) handleStatusCommand(args []string) {
	item, ok := a.selectedItem()
	if !ok {
		return
	}
	if len(args) != 1 {
		a.SetError("Usage: status <icon id|none>")
		return
	}
	ref, err := a.resolveStatus(args[0])
	if err != nil {
		a.SetError(err.Error())
		return
	}
	a.edit("status", func() bool { return a.session.SetPrimaryIcon(item.ID, ref) })
}

// handleExportCommand writes the list as markdown. "--detail" includes
// item details.
func (a *App) handleExportCommand(args []string) {
	var path string
	includeDetail := false
	for _, arg := range args {
		if arg == "--detail" {
			includeDetail = true
			continue
		}
		path = arg
	}
	if path == "" {
		a.SetError("Usage: export <file.md> [--detail]")
		return
	}
	a.doc.Items = a.session.Items()
	err := export.ExportToMarkdown(a.doc, path, export.Options{
		Config:          a.session.Config(),
		Registry:        a.session.Registry(),
		Collapsed:       a.session.Collapsed(),
		IncludeDetail:   includeDetail,
		Timestamp:       time.Now(),
		TimestampFormat: a.cfg.Get("export_timestamp_format"),
	})
	if err != nil {
		a.SetError("Export failed: " + err.Error())
		return
	}
	a.SetStatus("Exported to " + path)
}

// handleImportCommand reads a markdown or indented text file into the list
func (a *App) handleImportCommand(args []string) {
	if len(args) == 0 {
		a.SetError("Usage: import <file> [append|prepend|replace]")
		return
	}
	path := args[0]
	mode := import_parser.InsertAppend
	if len(args) > 1 {
		mode = args[1]
	}
	content, err := os.ReadFile(path)
	if err != nil {
		a.SetError("Import failed: " + err.Error())
		return
	}
	imported, err := import_parser.ImportFile(string(content), import_parser.ImportOptions{
		Format:    import_parser.DetectFormat(path),
		IconSetID: a.session.Config().IconSetID,
	})
	if err != nil {
		a.SetError("Import failed: " + err.Error())
		return
	}
	combined, err := import_parser.Insert(a.session.Items(), imported, mode)
	if err != nil {
		a.SetError("Import failed: " + err.Error())
		return
	}
	if a.store.ReadOnly {
		a.SetError("Read-only: this is a backup")
		return
	}
	a.undo.Push("import", a.session.Items())
	a.session.SetItems(combined)
	a.dirty = true
	a.SetStatus(fmt.Sprintf("Imported %d items from %s", model.CountItems(imported), path))
}

func (a *App) showMessages() {
	msgs := a.messages.GetMessagesReverse()
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		prefix := "  "
		if m.Error {
			prefix = "! "
		}
		lines = append(lines, prefix+m.Timestamp.Format("15:04:05")+" "+m.Text)
	}
	a.viewer.ShowText("Messages", lines)
}
