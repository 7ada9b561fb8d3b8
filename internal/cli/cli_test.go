package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/pipeline"
	"github.com/pstuifzand/tui-smartlist/internal/socket"
	"github.com/pstuifzand/tui-smartlist/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_RUNTIME_DIR", home)
	return home
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeList(t *testing.T, dir string, items ...*model.ListItem) string {
	t.Helper()
	path := filepath.Join(dir, "list.json")
	doc := model.NewDocument("Plan")
	doc.Items = items
	require.NoError(t, storage.NewStore(path).Save(doc))
	return path
}

func done(text string) *model.ListItem {
	item := model.NewItem(text)
	item.PrimaryIcon = &model.IconRef{SetID: "status", IconID: "done"}
	return item
}

func TestRenderNumbering(t *testing.T) {
	dir := setupHome(t)
	parent := model.NewItem("Parent")
	parent.Children = []*model.ListItem{model.NewItem("Child")}
	path := writeList(t, dir, parent, model.NewItem("Second"))

	out, err := runCmd(t, "render", "--set", "show_numbering=true", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "1. Parent")
	assert.Contains(t, lines[1], "a) Child")
	assert.Contains(t, lines[2], "2. Second")
}

func TestRenderPresentStep(t *testing.T) {
	dir := setupHome(t)
	path := writeList(t, dir, model.NewItem("One"), model.NewItem("Two"), model.NewItem("Three"))

	out, err := runCmd(t, "render", "--present", "--step", "1", "--set", "reveal_mode=one-by-one-accumulate", path)
	require.NoError(t, err)

	assert.Contains(t, out, "One")
	assert.Contains(t, out, "Two")
	assert.NotContains(t, out, "Three")
}

func TestRenderSkipsHiddenItemsWhenPresenting(t *testing.T) {
	dir := setupHome(t)
	hidden := model.NewItem("Secret")
	hidden.Visible = model.Bool(false)
	path := writeList(t, dir, model.NewItem("Shown"), hidden)

	out, err := runCmd(t, "render", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Secret")

	out, err = runCmd(t, "render", "--present", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "Secret")
}

func TestProgressJSON(t *testing.T) {
	dir := setupHome(t)
	path := writeList(t, dir, done("A"), done("B"), model.NewItem("C"))

	out, err := runCmd(t, "progress", "--json", path)
	require.NoError(t, err)

	var p pipeline.Progress
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, 3, p.Total)
	require.NotEmpty(t, p.Segments)
	assert.Equal(t, "done", p.Segments[0].IconID)
	assert.Equal(t, 2, p.Segments[0].Count)

	out, err = runCmd(t, "progress", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Done 2/3")
}

func TestExportToStdout(t *testing.T) {
	dir := setupHome(t)
	item := model.NewItem("Ship it")
	item.Detail = "on friday"
	path := writeList(t, dir, item)

	out, err := runCmd(t, "export", "--no-timestamp", "--detail", path)
	require.NoError(t, err)
	assert.Contains(t, out, "# Plan")
	assert.Contains(t, out, "- Ship it\n")
	assert.Contains(t, out, "> on friday")
	assert.NotContains(t, out, "Exported")
}

func TestImportCreatesList(t *testing.T) {
	dir := setupHome(t)
	source := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(source, []byte("- [done] First\n  - Nested\n- Second\n"), 0o644))
	target := filepath.Join(dir, "new.yaml")

	out, err := runCmd(t, "import", source, target)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 items")

	doc, err := storage.NewStore(target).Load()
	require.NoError(t, err)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "First", doc.Items[0].Text)
	assert.Equal(t, "done", doc.Items[0].Status())
	require.Len(t, doc.Items[0].Children, 1)
}

func TestDiffTwoFiles(t *testing.T) {
	dir := setupHome(t)
	a := model.NewItem("Keep")
	before := writeList(t, dir, a)

	doc := model.NewDocument("Plan")
	doc.Items = []*model.ListItem{a, model.NewItem("Added")}
	after := filepath.Join(dir, "after.json")
	require.NoError(t, storage.NewStore(after).Save(doc))

	out, err := runCmd(t, "diff", before, after)
	require.NoError(t, err)
	assert.Contains(t, out, "New Items:")
	assert.Contains(t, out, "Added")

	out, err = runCmd(t, "diff", "-s", before, before)
	require.NoError(t, err)
	assert.Contains(t, out, "No changes detected")
}

func TestMissingFile(t *testing.T) {
	dir := setupHome(t)
	_, err := runCmd(t, "render", filepath.Join(dir, "nope.json"))
	assert.Error(t, err)
}

func TestSendState(t *testing.T) {
	setupHome(t)
	server, err := socket.NewServer(os.Getpid())
	require.NoError(t, err)
	t.Cleanup(server.Stop)
	server.Start()

	go func() {
		msg := <-server.Messages()
		msg.ResponseChan <- &socket.Response{Success: true, Message: "PRESENT", Step: 2, MaxStep: 4, FocusedID: "item_x"}
	}()

	out, err := runCmd(t, "send", "state", "--socket", server.SocketPath())
	require.NoError(t, err)
	assert.Equal(t, "mode=PRESENT step=2/4 focused=item_x\n", out)
}

func TestSearchByStatus(t *testing.T) {
	dir := setupHome(t)
	parent := model.NewItem("Parent")
	parent.Collapsed = model.Bool(true)
	parent.Children = []*model.ListItem{done("Nested done")}
	path := writeList(t, dir, done("Top done"), parent, model.NewItem("Open"))

	out, err := runCmd(t, "search", path, "status:done")
	require.NoError(t, err)
	assert.Equal(t, "[done] Top done\n  [done] Nested done\n", out)

	out, err = runCmd(t, "search", "--format", "fields", "--fields", "text,path", path, "status:done")
	require.NoError(t, err)
	assert.Contains(t, out, "Nested done\tParent > Nested done")
}

func TestSearchRejectsUnknownFormat(t *testing.T) {
	dir := setupHome(t)
	path := writeList(t, dir, model.NewItem("Open"))

	_, err := runCmd(t, "search", "--format", "xml", path, "open")
	assert.Error(t, err)
}
