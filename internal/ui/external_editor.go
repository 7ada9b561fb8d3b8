package ui

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pstuifzand/tui-smartlist/internal/config"
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/mutate"
)

// ExternalEditorData is the TOML frontmatter of an item opened in an
// external editor. The detail text follows the frontmatter.
type ExternalEditorData struct {
	Text        string `toml:"text"`
	Description string `toml:"description"`
	Status      string `toml:"status"`
	Visible     bool   `toml:"visible"`
}

// ResolveStatusFunc maps a status name from the frontmatter to an icon.
// An empty name clears the icon.
type ResolveStatusFunc func(status string) (*model.IconRef, error)

// EditItemInExternalEditor opens the item in editorCmd and returns the
// edited fields. changed is false when the file was left alone or emptied.
func EditItemInExternalEditor(item *model.ListItem, editorCmd string, resolveStatus ResolveStatusFunc) (fields mutate.Fields, changed bool, err error) {
	fields = mutate.FieldsOf(item)

	tmpFile, err := os.CreateTemp("", "smartlist-edit-*.md")
	if err != nil {
		return fields, false, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	original, err := serializeItem(item)
	if err != nil {
		tmpFile.Close()
		return fields, false, fmt.Errorf("failed to serialize item: %w", err)
	}
	if _, err := tmpFile.Write(original); err != nil {
		tmpFile.Close()
		return fields, false, err
	}
	tmpFile.Close()

	// sh -c so editor commands may carry flags, like "vim --clean"
	cmd := exec.Command("sh", "-c", editorCmd+" "+tmpPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return fields, false, fmt.Errorf("failed to launch editor: %w", err)
		}
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return fields, false, fmt.Errorf("failed to read edited file: %w", err)
	}
	if bytes.Equal(original, edited) || len(bytes.TrimSpace(edited)) == 0 {
		return fields, false, nil
	}

	data, detail, err := deserializeItem(edited, item)
	if err != nil {
		return fields, false, fmt.Errorf("failed to parse edited content: %w (keeping original)", err)
	}

	fields.Text = data.Text
	fields.Description = data.Description
	fields.Detail = detail
	fields.Visible = data.Visible
	if data.Status != item.Status() {
		ref, err := resolveStatus(data.Status)
		if err != nil {
			return fields, false, fmt.Errorf("%w (keeping original)", err)
		}
		fields.PrimaryIcon = ref
	}
	return fields, true, nil
}

// serializeItem writes the frontmatter followed by the detail text
func serializeItem(item *model.ListItem) ([]byte, error) {
	data := ExternalEditorData{
		Text:        item.Text,
		Description: item.Description,
		Status:      item.Status(),
		Visible:     item.IsVisible(),
	}

	var buf bytes.Buffer
	buf.WriteString("+++\n")
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return nil, err
	}
	buf.WriteString("+++\n")
	buf.WriteString(item.Detail)
	return buf.Bytes(), nil
}

// deserializeItem parses edited content. Without frontmatter the whole
// content becomes the detail and the other fields keep the values of item.
func deserializeItem(content []byte, item *model.ListItem) (*ExternalEditorData, string, error) {
	data := &ExternalEditorData{
		Text:        item.Text,
		Description: item.Description,
		Status:      item.Status(),
		Visible:     item.IsVisible(),
	}

	contentStr := string(content)
	if !strings.HasPrefix(contentStr, "+++\n") {
		return data, strings.TrimSpace(contentStr), nil
	}
	rest := contentStr[4:]
	end := strings.Index(rest, "+++\n")
	if end == -1 {
		if !strings.HasSuffix(rest, "+++") {
			return nil, "", fmt.Errorf("missing closing +++")
		}
		end = len(rest) - 3
	}

	if err := toml.Unmarshal([]byte(rest[:end]), data); err != nil {
		return nil, "", err
	}
	detail := ""
	if end+4 <= len(rest) {
		detail = rest[end+4:]
	}
	return data, strings.TrimSpace(detail), nil
}

// ResolveEditor determines which editor to use
func ResolveEditor(cfg *config.Config) string {
	// :set editor overrides the environment
	if editorVal := cfg.Get("editor"); editorVal != "" {
		return editorVal
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vi"
}
