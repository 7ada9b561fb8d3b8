// Package app is the terminal front end: it drives a smartlist session
// from the keyboard, the command line and the control socket.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-smartlist/internal/config"
	"github.com/pstuifzand/tui-smartlist/internal/history"
	"github.com/pstuifzand/tui-smartlist/internal/iconset"
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/smartlist"
	"github.com/pstuifzand/tui-smartlist/internal/socket"
	"github.com/pstuifzand/tui-smartlist/internal/storage"
	"github.com/pstuifzand/tui-smartlist/internal/theme"
	"github.com/pstuifzand/tui-smartlist/internal/ui"
	"github.com/pstuifzand/tui-smartlist/internal/watcher"
	"github.com/sirupsen/logrus"
)

// Mode is the input mode of the application
type Mode string

const (
	EditMode    Mode = "EDIT"
	InsertMode  Mode = "INSERT"
	PresentMode Mode = "PRESENT"
)

const (
	undoLimit        = 200
	autoSaveInterval = 5 * time.Second
	statusTimeout    = 3 * time.Second
	keepBackups      = 50
)

// Options configures a new App
type Options struct {
	FilePath string
	Present  bool
	Config   *config.Config
	Registry iconset.Registry
	Socket   bool
	Watch    bool
}

// App is the main application controller
type App struct {
	screen   *ui.Screen
	doc      *model.Document
	store    *storage.FileStore
	cfg      *config.Config
	session  *smartlist.Session
	list     *ui.ListView
	editor   *ui.Editor
	search   *ui.Search
	help     *ui.HelpScreen
	command  *ui.CommandMode
	messages *ui.MessageLogger
	viewer   *ui.DiffView
	splash   *ui.SplashScreen
	undo     *history.Stack

	backups   *storage.BackupManager
	sessionID string
	server    *socket.Server
	watcher   *watcher.Watcher
	watch     bool
	reloadCh  chan struct{}

	statusMsg    string
	statusError  bool
	statusTime   time.Time
	dirty        bool
	autoSaveTime time.Time
	quit         bool
	debugMode    bool
	mode         Mode

	keybindings        []KeyBinding
	presentKeybindings []KeyBinding
	pendingKeybindings []PendingKeyBinding
	pendingKey         rune

	// label of the edit in flight, recorded with the undo snapshot
	editLabel string
}

// NewApp creates a new App instance on the terminal
func NewApp(opts Options) (*App, error) {
	if opts.Config == nil {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		opts.Config = cfg
	}

	store := storage.NewStore(opts.FilePath)
	doc, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load list: %w", err)
	}

	screen, err := ui.NewScreen(theme.LoadThemeOrDefault(opts.Config.Theme))
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	a := newApp(doc, store, opts)
	a.screen = screen

	if manager, err := history.NewManager(); err == nil {
		a.command = ui.NewCommandModeWithHistory(manager)
		a.search = ui.NewSearchWithHistory(manager)
	} else {
		logrus.Warnf("Command history disabled: %v", err)
	}

	if bm, err := storage.NewBackupManager(); err == nil {
		a.backups = bm
	} else {
		logrus.Warnf("Backups disabled: %v", err)
	}

	if opts.Socket {
		a.startSocket()
	}
	if opts.Watch && store.FileExists() {
		a.startWatcher()
	}
	return a, nil
}

// newApp wires the session without touching the terminal
func newApp(doc *model.Document, store *storage.FileStore, opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	reg := opts.Registry
	if reg == nil {
		builtin := iconset.Builtin()
		iconset.LoadUserSets(builtin)
		reg = builtin
	}

	seedEmpty(doc, store)

	a := &App{
		doc:          doc,
		store:        store,
		cfg:          cfg,
		list:         ui.NewListView(),
		search:       ui.NewSearch(),
		help:         ui.NewHelpScreen(),
		command:      ui.NewCommandMode(),
		messages:     ui.NewMessageLogger(100),
		viewer:       ui.NewDiffView(),
		splash:       ui.NewSplashScreen(),
		undo:         history.NewStack(undoLimit),
		sessionID:    storage.NewSessionID(),
		reloadCh:     make(chan struct{}, 1),
		statusMsg:    "Ready",
		statusTime:   time.Now(),
		autoSaveTime: time.Now(),
		mode:         EditMode,
	}

	a.session = smartlist.NewSession(doc.Items, a.listConfig(), reg)
	a.session.OnDataChange = a.onDataChange
	a.session.SetEditing(true)

	a.keybindings = a.InitializeKeybindings()
	a.presentKeybindings = a.InitializePresentKeybindings()
	a.pendingKeybindings = a.InitializePendingKeybindings()
	a.help.SetSections(a.helpSections())

	a.watch = opts.Watch
	if opts.FilePath == "" {
		a.splash.Show()
	}
	if opts.Present {
		a.setMode(PresentMode)
	}
	if store.ReadOnly {
		a.SetStatus("Viewing backup (read-only)")
	}
	a.refresh()
	return a
}

// seedEmpty gives an empty writable list one item to start from
func seedEmpty(doc *model.Document, store *storage.FileStore) {
	if len(doc.Items) == 0 && !store.ReadOnly {
		doc.Items = append(doc.Items, model.NewItem("Welcome to tui-smartlist"))
	}
}

// listConfig layers the document config and session settings over the
// configured defaults
func (a *App) listConfig() model.Config {
	base := a.cfg.List.Merge(a.doc.Config)
	cfg, err := a.cfg.ApplyTo(base)
	if err != nil {
		logrus.Warnf("Ignoring list settings: %v", err)
		return base.Normalize()
	}
	return cfg
}

// onDataChange accepts or rejects every tree the session proposes
func (a *App) onDataChange(items []*model.ListItem) bool {
	if a.store.ReadOnly {
		a.SetError("Read-only: this is a backup")
		return false
	}
	label := a.editLabel
	if label == "" {
		label = "edit"
	}
	a.undo.Push(label, a.session.Items())
	a.dirty = true
	return true
}

// edit runs fn as one undoable step named label
func (a *App) edit(label string, fn func() bool) bool {
	a.editLabel = label
	defer func() { a.editLabel = "" }()
	if !fn() {
		return false
	}
	a.refresh()
	return true
}

// refresh pushes the session state into the views
func (a *App) refresh() {
	a.doc.Items = a.session.Items()
	a.list.SetRows(a.session.Render())
	a.search.SetItems(a.session.Items())
}

func (a *App) setMode(mode Mode) {
	a.mode = mode
	a.session.SetEditing(mode != PresentMode)
	if mode == PresentMode {
		a.session.Machine().Reset()
	}
	a.refresh()
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			event := a.screen.PollEvent()
			if event == nil {
				close(eventChan)
				return
			}
			eventChan <- event
		}
	}()

	var socketMessages <-chan socket.Message
	if a.server != nil {
		socketMessages = a.server.Messages()
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	a.render()
	for !a.quit {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			a.handleRawEvent(ev)
			a.render()
		case msg := <-socketMessages:
			a.handleSocketMessage(msg)
			a.render()
		case <-a.reloadCh:
			a.reloadFromDisk()
			a.render()
		case <-ticker.C:
			if a.dirty && time.Since(a.autoSaveTime) > autoSaveInterval {
				if err := a.Save(); err != nil {
					a.SetError("Failed to save: " + err.Error())
				}
			}
			a.render()
		}
	}
	return nil
}

// Close releases the terminal, socket and watcher
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	if a.server != nil {
		a.server.Stop()
		a.server = nil
	}
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

func (a *App) startSocket() {
	server, err := socket.NewServer(os.Getpid())
	if err != nil {
		logrus.Warnf("Control socket disabled: %v", err)
		return
	}
	server.Start()
	a.server = server
	logrus.Infof("Listening on %s", server.SocketPath())
}

func (a *App) startWatcher() {
	w, err := watcher.New(a.store.FilePath, 0, func() {
		select {
		case a.reloadCh <- struct{}{}:
		default:
		}
	})
	if err != nil {
		logrus.Warnf("File watching disabled: %v", err)
		return
	}
	a.watcher = w
}

// render renders the current state to the screen
func (a *App) render() {
	if a.screen == nil {
		return
	}
	width, height := a.screen.Size()
	a.screen.Clear()

	// title bar with the step counter while presenting
	header := " " + a.doc.Title + " "
	a.screen.FillLine(0, 0, a.screen.HeaderStyle())
	a.screen.DrawString(0, 0, header, a.screen.HeaderStyle())
	if a.mode == PresentMode {
		m := a.session.Machine()
		if m.Active() || m.Overridden() {
			step := fmt.Sprintf(" %d/%d ", m.Step()+1, m.MaxStep()+1)
			if m.Overridden() {
				step = " remote "
			}
			a.screen.DrawString(width-ui.StringWidth(step), 0, step, a.screen.HeaderStyle())
		}
	}

	listStart, listEnd := 1, height-1
	if a.search.IsActive() || a.command.IsActive() || a.fieldEditorActive() {
		listEnd--
	}

	cfg := a.session.Config()
	progress := a.session.Progress()
	switch {
	case progress.Empty() || cfg.ProgressSummary == model.ProgressHidden:
	case cfg.ProgressSummary == model.ProgressAbove:
		ui.RenderProgress(a.screen, listStart, progress)
		listStart++
	case cfg.ProgressSummary == model.ProgressBelow:
		listEnd--
		ui.RenderProgress(a.screen, listEnd, progress)
	}

	a.list.Render(a.screen, listStart, listEnd, ui.RenderContext{
		Config:         cfg,
		Registry:       a.session.Registry(),
		Presenting:     a.mode == PresentMode,
		Reveal:         a.session.Reveal(),
		ExpandedDetail: a.session.ExpandedDetail(),
		Editor:         a.editor,
		Search:         a.search,
	})
	a.splash.Render(a.screen)

	switch {
	case a.search.IsActive():
		a.search.Render(a.screen, height-2)
	case a.command.IsActive():
		a.command.Render(a.screen, height-2)
	case a.fieldEditorActive():
		label := a.editor.Field().String() + ": "
		x := a.screen.DrawString(0, height-2, label, a.screen.CommandPromptStyle())
		a.editor.Render(a.screen, x, height-2, width-x)
	}

	a.renderStatusLine(height - 1)
	a.viewer.Render(a.screen)
	a.help.Render(a.screen)
	a.screen.Show()
}

// fieldEditorActive reports an editor for a field that is not drawn inline
func (a *App) fieldEditorActive() bool {
	return a.editor != nil && a.editor.IsActive() && a.editor.Field() != ui.FieldText
}

func (a *App) renderStatusLine(y int) {
	a.screen.FillLine(0, y, a.screen.BackgroundStyle())
	x := a.screen.DrawString(0, y, " "+string(a.mode)+" ", a.screen.StatusModeStyle())

	if a.statusMsg != "Ready" && time.Since(a.statusTime) <= statusTimeout {
		style := a.screen.StatusMessageStyle()
		if a.statusError {
			style = a.screen.StatusModifiedStyle()
		}
		x = a.screen.DrawString(x+1, y, a.statusMsg, style)
	}
	if a.dirty {
		a.screen.DrawString(x+1, y, "[+]", a.screen.StatusModifiedStyle())
	}

	if a.debugMode {
		row, _ := a.list.Selected()
		info := ""
		if row.Item != nil {
			info = fmt.Sprintf(" %s #%d ", row.Item.ID, row.FlatIndex)
		}
		a.screen.DrawString(a.screen.GetWidth()-ui.StringWidth(info), y, info, a.screen.StatusMessageStyle())
	}
}

// handleRawEvent routes an event to whichever widget owns the input
func (a *App) handleRawEvent(ev tcell.Event) {
	keyEv, ok := ev.(*tcell.EventKey)
	if !ok {
		if _, resized := ev.(*tcell.EventResize); resized && a.screen != nil {
			a.screen.Sync()
		}
		return
	}

	switch {
	case a.command.IsActive():
		if cmd, done := a.command.HandleKey(keyEv); done {
			a.handleCommand(cmd)
		}
	case a.search.IsActive():
		if a.search.HandleKey(keyEv) {
			a.gotoCurrentMatch()
		}
	case a.editor != nil && a.editor.IsActive():
		if !a.editor.HandleKey(keyEv) {
			a.finishEdit()
		}
	case a.help.IsVisible():
		a.handleHelpKey(keyEv)
	case a.viewer.IsVisible():
		a.viewer.HandleKey(keyEv)
	case a.splash.IsVisible():
		a.splash.Hide()
		a.handleKeypress(keyEv)
	default:
		a.handleKeypress(keyEv)
	}
	a.session.Machine().SetInputFocus(!a.command.IsActive() && !a.search.IsActive() && !a.help.IsVisible() && !a.viewer.IsVisible())
}

func (a *App) handleHelpKey(ev *tcell.EventKey) {
	switch {
	case ev.Key() == tcell.KeyEscape, ev.Rune() == '?', ev.Rune() == 'q':
		a.help.Toggle()
	case ev.Key() == tcell.KeyDown, ev.Rune() == 'j':
		a.help.Scroll(1)
	case ev.Key() == tcell.KeyUp, ev.Rune() == 'k':
		a.help.Scroll(-1)
	}
}

// startEdit opens an editor on the selected item
func (a *App) startEdit(field ui.EditField, clear bool) {
	row, ok := a.list.Selected()
	if !ok {
		return
	}
	if a.store.ReadOnly {
		a.SetError("Read-only: this is a backup")
		return
	}
	text := row.Item.Text
	switch field {
	case ui.FieldDescription:
		text = row.Item.Description
	case ui.FieldDetail:
		text = row.Item.Detail
	}
	a.editor = ui.NewEditor(row.Item.ID, field, text)
	if clear {
		a.editor.SetText("")
	}
	a.editor.Start()
	a.mode = InsertMode
}

// finishEdit applies the editor. An item left without text and children
// is removed when the edit ends.
func (a *App) finishEdit() {
	e := a.editor
	a.editor = nil
	a.mode = EditMode
	text := e.Stop()
	id := e.ItemID()

	if e.Field() == ui.FieldText && text == "" {
		a.edit("edit text", func() bool { return a.session.SetText(id, text) })
		if focus, ok := a.deleteIfEmpty(id); ok {
			a.list.SelectByID(focus)
		}
		return
	}
	if !e.Changed() {
		return
	}

	switch e.Field() {
	case ui.FieldText:
		a.edit("edit text", func() bool { return a.session.SetText(id, text) })
	case ui.FieldDescription:
		a.edit("edit description", func() bool { return a.session.SetDescription(id, text) })
	case ui.FieldDetail:
		a.edit("edit detail", func() bool { return a.session.SetDetail(id, text) })
	}
}

func (a *App) deleteIfEmpty(id string) (string, bool) {
	var focus string
	ok := a.edit("delete", func() bool {
		f, changed := a.session.DeleteIfEmpty(id)
		focus = f
		return changed
	})
	return focus, ok
}

// gotoCurrentMatch selects the current search match, expanding collapsed
// ancestors so it is on screen
func (a *App) gotoCurrentMatch() {
	id, ok := a.search.CurrentMatch()
	if !ok {
		return
	}
	for _, ancestor := range model.AncestorIDs(a.session.Items(), id) {
		if a.session.Collapsed().IsCollapsed(ancestor) {
			a.session.ToggleCollapsed(ancestor)
		}
	}
	a.refresh()
	if !a.list.SelectByID(id) {
		a.SetStatus("Match is hidden by the current filter")
		return
	}
	a.SetStatus(fmt.Sprintf("Match %d of %d", a.search.CurrentIndex()+1, a.search.GetMatchCount()))
}

// Save writes the document, backing up the previous version first
func (a *App) Save() error {
	if a.store.ReadOnly {
		return fmt.Errorf("cannot save: file is a read-only backup")
	}
	if a.store.FilePath == "" {
		return fmt.Errorf("no file name (use :w <file>)")
	}
	a.doc.Items = a.session.Items()

	if a.backups != nil && a.store.FileExists() {
		if prev, err := a.store.Load(); err == nil {
			if _, err := a.backups.CreateBackup(prev, a.store.FilePath, a.sessionID); err != nil {
				logrus.Warnf("Failed to create backup: %v", err)
			} else if _, err := a.backups.Prune(a.store.FilePath, keepBackups); err != nil {
				logrus.Warnf("Failed to prune backups: %v", err)
			}
		}
	}

	if a.watcher != nil {
		a.watcher.IgnoreFor(time.Second)
	}
	if err := a.store.Save(a.doc); err != nil {
		return err
	}
	a.dirty = false
	a.autoSaveTime = time.Now()
	a.SetStatus("Saved")
	return nil
}

// reloadFromDisk adopts the file after an external change. Local edits
// win; the reload is skipped while there are unsaved changes.
func (a *App) reloadFromDisk() {
	if a.dirty {
		a.SetError("File changed on disk; :reload! to discard local changes")
		return
	}
	if err := a.reload(); err != nil {
		a.SetError("Failed to reload: " + err.Error())
	}
}

func (a *App) reload() error {
	doc, err := a.store.Load()
	if err != nil {
		return err
	}
	a.adopt(doc)
	a.SetStatus("Reloaded from disk")
	return nil
}

// adopt replaces the session contents with doc and forgets local history
func (a *App) adopt(doc *model.Document) {
	a.doc = doc
	a.undo.Clear()
	a.session.SetConfig(a.listConfig())
	a.session.SetItems(doc.Items)
	a.dirty = false
	a.refresh()
}

// openFile switches to the list stored at path, creating it on first save
func (a *App) openFile(path string) error {
	store := storage.NewStore(path)
	doc, err := store.Load()
	if err != nil {
		return err
	}
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	a.store = store
	seedEmpty(doc, store)
	a.adopt(doc)
	a.splash.Hide()
	if a.watch && store.FileExists() {
		a.startWatcher()
	}
	if store.ReadOnly {
		a.SetStatus("Opened backup " + path + " (read-only)")
	} else {
		a.SetStatus("Opened " + path)
	}
	return nil
}

// SetStatus sets the status message
func (a *App) SetStatus(msg string) {
	a.statusMsg = msg
	a.statusError = false
	a.statusTime = time.Now()
	a.messages.AddMessage(msg)
}

// SetError sets an error status message
func (a *App) SetError(msg string) {
	a.statusMsg = msg
	a.statusError = true
	a.statusTime = time.Now()
	a.messages.AddError(msg)
	logrus.Debugf("Status error: %s", msg)
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}
