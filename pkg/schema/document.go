package schema

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-quoteform/pkg/model"
)

// Document wraps a raw lead payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return Document{}, fmt.Errorf("schema: document %s is empty", src.Location())
	}
	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// ReadFile loads a lead document from disk, or from r when path is "-".
func ReadFile(path string, stdin io.Reader) (Document, error) {
	if path == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return Document{}, fmt.Errorf("schema: read stdin: %w", err)
		}
		return NewDocument(SourceFromStdin(), raw)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return NewDocument(SourceFromFile(path), raw)
}

// ReadFS loads a lead document from fsys.
func ReadFS(fsys fs.FS, name string) (Document, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Document{}, fmt.Errorf("schema: read %s: %w", name, err)
	}
	return NewDocument(SourceFromFS(name), raw)
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Partial decodes the document as a JSON or YAML object of field values.
func (d Document) Partial() (model.Partial, error) {
	var out map[string]any
	if err := sonic.Unmarshal(d.raw, &out); err != nil {
		out = nil
		if yamlErr := yaml.Unmarshal(d.raw, &out); yamlErr != nil {
			return nil, fmt.Errorf("schema: parse %s: invalid JSON or YAML: %w", d.Location(), yamlErr)
		}
	}
	if out == nil {
		return nil, fmt.Errorf("schema: document %s is not an object", d.Location())
	}
	return model.Partial(out), nil
}
