package storage

import (
	"bytes"

	"github.com/pstuifzand/tui-smartlist/internal/model"
	"gopkg.in/yaml.v3"
)

var yamlCodec = codec{
	name: "YAML",
	marshal: func(doc *model.Document) ([]byte, error) {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	},
	unmarshal: func(data []byte, doc *model.Document) error {
		return yaml.Unmarshal(data, doc)
	},
}

// NewYAMLStore creates a new YAML store for the given file path
func NewYAMLStore(filePath string) *FileStore {
	return newFileStore(filePath, yamlCodec)
}
