package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pstuifzand/tui-smartlist/internal/config"
	"github.com/pstuifzand/tui-smartlist/internal/model"
)

func statusResolver(status string) (*model.IconRef, error) {
	switch status {
	case "":
		return nil, nil
	case "todo", "done":
		return &model.IconRef{SetID: "status", IconID: status}, nil
	}
	return nil, fmt.Errorf("unknown status %q", status)
}

// copyEditor returns an editor command that replaces the file with content
func copyEditor(t *testing.T, content string) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "edited.md")
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return "cp " + src
}

func editorItem() *model.ListItem {
	return &model.ListItem{
		ID:          "x",
		Text:        "Ship it",
		Description: "before friday",
		PrimaryIcon: &model.IconRef{SetID: "status", IconID: "todo"},
		Detail:      "Long notes",
	}
}

func TestExternalEditorUnchanged(t *testing.T) {
	_, changed, err := EditItemInExternalEditor(editorItem(), "true", statusResolver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("expected no change when the editor leaves the file alone")
	}
}

func TestExternalEditorAppliesFrontmatter(t *testing.T) {
	editor := copyEditor(t, "+++\ntext = \"Shipped\"\ndescription = \"\"\nstatus = \"done\"\nvisible = false\n+++\nFirst line\nSecond line\n")

	fields, changed, err := EditItemInExternalEditor(editorItem(), editor, statusResolver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("expected a change")
	}
	if fields.Text != "Shipped" || fields.Description != "" || fields.Visible {
		t.Errorf("unexpected fields: %+v", fields)
	}
	if fields.PrimaryIcon == nil || fields.PrimaryIcon.IconID != "done" {
		t.Errorf("expected status done, got %+v", fields.PrimaryIcon)
	}
	if fields.Detail != "First line\nSecond line" {
		t.Errorf("unexpected detail %q", fields.Detail)
	}
}

func TestExternalEditorRejectsUnknownStatus(t *testing.T) {
	editor := copyEditor(t, "+++\ntext = \"Ship it\"\nstatus = \"maybe\"\n+++\n")

	_, changed, err := EditItemInExternalEditor(editorItem(), editor, statusResolver)
	if err == nil || changed {
		t.Errorf("expected an error for an unknown status, got changed=%v err=%v", changed, err)
	}
}

func TestExternalEditorEmptiedFileKeepsItem(t *testing.T) {
	_, changed, err := EditItemInExternalEditor(editorItem(), copyEditor(t, "\n"), statusResolver)
	if err != nil || changed {
		t.Errorf("expected no change for an emptied file, got changed=%v err=%v", changed, err)
	}
}

func TestDeserializeWithoutFrontmatter(t *testing.T) {
	item := editorItem()
	data, detail, err := deserializeItem([]byte("  only detail  \n"), item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Text != item.Text || data.Status != "todo" || !data.Visible {
		t.Errorf("expected the item's values, got %+v", data)
	}
	if detail != "only detail" {
		t.Errorf("unexpected detail %q", detail)
	}
}

func TestSerializeThenDeserialize(t *testing.T) {
	item := editorItem()
	content, err := serializeItem(item)
	if err != nil {
		t.Fatal(err)
	}
	data, detail, err := deserializeItem(content, &model.ListItem{})
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, content)
	}
	if data.Text != item.Text || data.Description != item.Description || data.Status != "todo" || detail != item.Detail {
		t.Errorf("unexpected result %+v %q", data, detail)
	}
}

func TestResolveEditor(t *testing.T) {
	cfg := config.Default()
	t.Setenv("EDITOR", "nano")
	if got := ResolveEditor(cfg); got != "nano" {
		t.Errorf("expected $EDITOR, got %q", got)
	}
	cfg.Set("editor", "vim --clean")
	if got := ResolveEditor(cfg); got != "vim --clean" {
		t.Errorf("expected the editor setting, got %q", got)
	}
}
