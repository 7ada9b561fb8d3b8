package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pstuifzand/tui-smartlist/internal/model"
)

// OutputFormat specifies how search results should be formatted
type OutputFormat int

const (
	OutputFormatText OutputFormat = iota
	OutputFormatFields
	OutputFormatJSON
	OutputFormatJSONL
)

var defaultJSONFields = []string{"id", "text", "status", "description", "depth", "path"}

// SearchOutputFormatter formats search matches for scripts
type SearchOutputFormatter struct {
	items []*model.ListItem
}

// NewSearchOutputFormatter creates a formatter for matches taken from items
func NewSearchOutputFormatter(items []*model.ListItem) *SearchOutputFormatter {
	return &SearchOutputFormatter{items: items}
}

// FormatResults formats matches according to the specified format
func (f *SearchOutputFormatter) FormatResults(matches []*model.ListItem, format OutputFormat, fields []string) (string, error) {
	if len(matches) == 0 {
		return "", nil
	}

	switch format {
	case OutputFormatFields:
		return f.formatFields(matches, fields), nil
	case OutputFormatJSON:
		return f.formatJSON(matches, fields)
	case OutputFormatJSONL:
		return f.formatJSONL(matches, fields)
	default:
		return f.formatText(matches), nil
	}
}

// formatText prints one match per line, indented by depth
func (f *SearchOutputFormatter) formatText(matches []*model.ListItem) string {
	lines := make([]string, 0, len(matches))
	for _, item := range matches {
		prefix := strings.Repeat("  ", f.depth(item))
		if status := item.Status(); status != "" {
			prefix += "[" + status + "] "
		}
		lines = append(lines, prefix+item.Text)
	}
	return strings.Join(lines, "\n")
}

// formatFields formats results as tab-separated values
func (f *SearchOutputFormatter) formatFields(matches []*model.ListItem, fields []string) string {
	if len(fields) == 0 {
		fields = []string{"id", "text", "status"}
	}

	var lines []string
	for _, item := range matches {
		var values []string
		for _, field := range fields {
			switch v := f.fieldValue(item, field).(type) {
			case []map[string]interface{}:
				var texts []string
				for _, node := range v {
					if text, ok := node["text"].(string); ok {
						texts = append(texts, text)
					}
				}
				values = append(values, strings.Join(texts, " > "))
			case string:
				// keep one record per line
				values = append(values, strings.ReplaceAll(v, "\n", " "))
			default:
				values = append(values, fmt.Sprintf("%v", v))
			}
		}
		lines = append(lines, strings.Join(values, "\t"))
	}
	return strings.Join(lines, "\n")
}

// formatJSON formats results as a JSON array
func (f *SearchOutputFormatter) formatJSON(matches []*model.ListItem, fields []string) (string, error) {
	if len(fields) == 0 {
		fields = defaultJSONFields
	}

	result := make([]map[string]interface{}, 0, len(matches))
	for _, item := range matches {
		result = append(result, f.object(item, fields))
	}

	data, err := json.MarshalIndent(result, "", "  ")
	return string(data), err
}

// formatJSONL formats results as JSON Lines (one JSON object per line)
func (f *SearchOutputFormatter) formatJSONL(matches []*model.ListItem, fields []string) (string, error) {
	if len(fields) == 0 {
		fields = defaultJSONFields
	}

	var lines []string
	for _, item := range matches {
		data, err := json.Marshal(f.object(item, fields))
		if err != nil {
			return "", err
		}
		lines = append(lines, string(data))
	}
	return strings.Join(lines, "\n"), nil
}

func (f *SearchOutputFormatter) object(item *model.ListItem, fields []string) map[string]interface{} {
	obj := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		obj[field] = f.fieldValue(item, field)
	}
	return obj
}

func (f *SearchOutputFormatter) fieldValue(item *model.ListItem, field string) interface{} {
	switch field {
	case "id":
		return item.ID
	case "text":
		return item.Text
	case "status":
		return item.Status()
	case "description":
		return item.Description
	case "detail":
		return item.Detail
	case "visible":
		return item.IsVisible()
	case "header":
		return item.IsHeader
	case "children":
		return len(item.Children)
	case "depth":
		return f.depth(item)
	case "path":
		return f.path(item)
	case "parent_id":
		ancestors := model.AncestorIDs(f.items, item.ID)
		if len(ancestors) == 0 {
			return ""
		}
		return ancestors[len(ancestors)-1]
	default:
		return ""
	}
}

func (f *SearchOutputFormatter) depth(item *model.ListItem) int {
	return len(model.AncestorIDs(f.items, item.ID))
}

// path lists the item and its ancestors from the root down
func (f *SearchOutputFormatter) path(item *model.ListItem) []map[string]interface{} {
	var parts []map[string]interface{}
	for _, id := range model.AncestorIDs(f.items, item.ID) {
		if ancestor := model.FindItemByID(f.items, id); ancestor != nil {
			parts = append(parts, map[string]interface{}{"id": ancestor.ID, "text": ancestor.Text})
		}
	}
	return append(parts, map[string]interface{}{"id": item.ID, "text": item.Text})
}

// ParseFormatFlag parses the format flag and returns the corresponding OutputFormat
func ParseFormatFlag(flagValue string) (OutputFormat, error) {
	switch strings.ToLower(flagValue) {
	case "text":
		return OutputFormatText, nil
	case "fields":
		return OutputFormatFields, nil
	case "json":
		return OutputFormatJSON, nil
	case "jsonl":
		return OutputFormatJSONL, nil
	default:
		return OutputFormatText, fmt.Errorf("invalid format: %s (valid options: text, fields, json, jsonl)", flagValue)
	}
}

// ParseFieldsFlag parses the --fields flag into a list of field names
func ParseFieldsFlag(flagValue string) []string {
	if flagValue == "" {
		return nil
	}
	var fields []string
	for _, field := range strings.Split(flagValue, ",") {
		field = strings.TrimSpace(field)
		if field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}
