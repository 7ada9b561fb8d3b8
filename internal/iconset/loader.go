package iconset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/sirupsen/logrus"
)

// SetFile represents the raw TOML icon set definition
//
//	name = "Traffic light"
//	[[icons]]
//	id = "green"
//	glyph = "●"
//	label = "Go"
//	color = "#9ece6a"
type SetFile struct {
	Name  string `toml:"name"`
	Icons []struct {
		ID     string `toml:"id"`
		Glyph  string `toml:"glyph"`
		Custom string `toml:"custom"`
		RefSet string `toml:"ref_set"`
		RefID  string `toml:"ref_id"`
		Label  string `toml:"label"`
		Color  string `toml:"color"`
	} `toml:"icons"`
}

// getIconSetPaths returns the search paths for icon set files
func getIconSetPaths() []string {
	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tui-smartlist", "iconsets"))
		paths = append(paths, filepath.Join(home, ".local", "share", "tui-smartlist", "iconsets"))
	}
	return paths
}

// LoadSetFromFile loads an icon set from a TOML file. The file name without
// extension becomes the set id.
func LoadSetFromFile(filePath string) (*IconSet, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read icon set file: %w", err)
	}

	var file SetFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse icon set file: %w", err)
	}

	id := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	return fileToSet(id, file)
}

func fileToSet(id string, file SetFile) (*IconSet, error) {
	set := &IconSet{ID: id, Name: file.Name}
	if set.Name == "" {
		set.Name = HumanizeStatus(id)
	}
	seen := make(map[string]bool)
	for _, icon := range file.Icons {
		if icon.ID == "" {
			return nil, fmt.Errorf("icon set %s: icon without id", id)
		}
		if seen[icon.ID] {
			return nil, fmt.Errorf("icon set %s: duplicate icon id %q", id, icon.ID)
		}
		seen[icon.ID] = true

		color := icon.Color
		if color != "" {
			c, err := colorful.Hex(color)
			if err != nil {
				return nil, fmt.Errorf("icon set %s: icon %s: invalid color %q", id, icon.ID, color)
			}
			color = c.Hex()
		}

		var ic model.Icon
		switch {
		case icon.RefSet != "" && icon.RefID != "":
			ic = model.Reference(icon.RefSet, icon.RefID)
		case icon.Custom != "":
			ic = model.Custom(icon.Custom)
		default:
			ic = model.Glyph(icon.Glyph)
		}

		label := icon.Label
		if label == "" {
			label = HumanizeStatus(icon.ID)
		}
		set.Entries = append(set.Entries, Entry{ID: icon.ID, Icon: ic, Label: label, Color: color})
	}
	return set, nil
}

// LoadUserSets adds every *.toml icon set found in the standard directories
// to reg. Broken files are logged and skipped.
func LoadUserSets(reg *MapRegistry) {
	for _, dir := range getIconSetPaths() {
		LoadDir(reg, dir)
	}
}

// LoadDir adds every *.toml icon set in dir to reg
func LoadDir(reg *MapRegistry, dir string) int {
	matches, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return 0
	}
	loaded := 0
	for _, path := range matches {
		set, err := LoadSetFromFile(path)
		if err != nil {
			logrus.Warnf("Skipping icon set %s: %v", path, err)
			continue
		}
		reg.Add(set)
		loaded++
		logrus.Debugf("Loaded icon set %s (%d icons) from %s", set.ID, len(set.Entries), path)
	}
	return loaded
}
