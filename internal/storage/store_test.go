package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pstuifzand/tui-smartlist/internal/model"
)

func sampleDocument() *model.Document {
	doc := model.NewDocument("Sprint review")
	doc.Config = &model.DocumentConfig{RevealMode: model.RevealBySection, ShowNumbering: model.Bool(false)}
	doc.Items = []*model.ListItem{
		{ID: "h1", Text: "Shipped", IsHeader: true},
		{
			ID:          "a",
			Text:        "Search",
			PrimaryIcon: &model.IconRef{SetID: "status", IconID: "done"},
			Detail:      "Fuzzy matching over item text",
			Children: []*model.ListItem{
				{ID: "a1", Text: "Ranking", Visible: model.Bool(false)},
			},
		},
	}
	return doc
}

func TestStoreSaveAndLoad(t *testing.T) {
	for _, name := range []string{"deck.json", "deck.yaml", "deck.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			store := NewStore(path)

			if err := store.Save(sampleDocument()); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			loaded, err := NewStore(path).Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			if diff := cmp.Diff(sampleDocument(), loaded); diff != "" {
				t.Errorf("Document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStoreFormat(t *testing.T) {
	if f := NewStore("list.YAML").Format(); f != "YAML" {
		t.Errorf("Expected YAML, got %s", f)
	}
	if f := NewStore("list.smartlist.json").Format(); f != "JSON" {
		t.Errorf("Expected JSON, got %s", f)
	}
}

func TestYAMLUsesCamelCaseKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")
	if err := NewYAMLStore(path).Save(sampleDocument()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	for _, key := range []string{"primaryIcon:", "isHeader: true", "revealMode: by-section"} {
		if !strings.Contains(string(data), key) {
			t.Errorf("Expected %q in YAML output:\n%s", key, data)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	doc, err := NewStore(filepath.Join(t.TempDir(), "new-deck.json")).Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if doc.Title != "new-deck" || len(doc.Items) != 0 {
		t.Errorf("Expected empty document titled new-deck, got %+v", doc)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	os.WriteFile(path, []byte("{not json"), 0644)

	if _, err := NewStore(path).Load(); err == nil {
		t.Errorf("Expected a parse error")
	}
}
