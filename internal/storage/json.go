package storage

import (
	"encoding/json"

	"github.com/pstuifzand/tui-smartlist/internal/model"
)

var jsonCodec = codec{
	name: "JSON",
	marshal: func(doc *model.Document) ([]byte, error) {
		return json.MarshalIndent(doc, "", "  ")
	},
	unmarshal: func(data []byte, doc *model.Document) error {
		return json.Unmarshal(data, doc)
	},
}

// NewJSONStore creates a new JSON store for the given file path
func NewJSONStore(filePath string) *FileStore {
	return newFileStore(filePath, jsonCodec)
}
