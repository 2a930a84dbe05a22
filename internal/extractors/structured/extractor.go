// Package structured flattens hierarchical configuration text (JSON,
// YAML, TOML) into one line per key and scalar value.
package structured

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
	"github.com/custodia-labs/kwscan/internal/extractors/source"
	"github.com/custodia-labs/kwscan/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Method names.
const (
	Method     = "structured"
	MethodJSON = "json"
	MethodYAML = "yaml"
	MethodTOML = "toml"
)

// maxAliasDepth bounds YAML alias expansion.
const maxAliasDepth = 32

// Extractor handles structured configuration files.
type Extractor struct{}

// New creates a new structured text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return Method
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".json", ".yaml", ".yml", ".toml"}
}

// Extract parses the document and emits every key before descending into
// its value, then every scalar leaf. Null values are omitted.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) domain.ExtractedText {
	method := methodFor(doc.Ext)

	data, err := source.Read(ctx, doc)
	if err != nil {
		return domain.Failed(method, err)
	}

	var lines []string
	switch method {
	case MethodJSON:
		lines, err = FlattenJSON(data)
	case MethodTOML:
		lines, err = FlattenTOML(data)
	default:
		lines, err = FlattenYAML(data)
	}
	if err != nil {
		return domain.Failed(method, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
	}

	logger.Info("Processing %s: %s", strings.ToUpper(method), doc.Path)
	return domain.Extracted(method, strings.Join(lines, "\n"))
}

func methodFor(ext string) string {
	switch ext {
	case ".json":
		return MethodJSON
	case ".toml":
		return MethodTOML
	default:
		return MethodYAML
	}
}

// FlattenJSON walks the token stream so object keys keep file order.
func FlattenJSON(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out []string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}

		switch v := tok.(type) {
		case string:
			out = append(out, v)
		case json.Number:
			out = append(out, v.String())
		case bool:
			out = append(out, strconv.FormatBool(v))
		}
	}
}

// FlattenYAML walks every document in the stream in node order.
func FlattenYAML(data []byte) ([]string, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var out []string
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
		out = walkYAML(&node, out, 0)
	}
}

func walkYAML(node *yaml.Node, out []string, aliasDepth int) []string {
	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode, yaml.MappingNode:
		for _, child := range node.Content {
			out = walkYAML(child, out, aliasDepth)
		}
	case yaml.AliasNode:
		if node.Alias != nil && aliasDepth < maxAliasDepth {
			out = walkYAML(node.Alias, out, aliasDepth+1)
		}
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			out = append(out, node.Value)
		}
	}
	return out
}

// FlattenTOML decodes into a map; keys within a table are emitted sorted.
func FlattenTOML(data []byte) ([]string, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("toml: %w", err)
	}
	return walkValue(doc, nil), nil
}

func walkValue(value any, out []string) []string {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, k)
			out = walkValue(v[k], out)
		}
	case []any:
		for _, item := range v {
			out = walkValue(item, out)
		}
	case []map[string]any:
		for _, item := range v {
			out = walkValue(item, out)
		}
	case nil:
	case string:
		out = append(out, v)
	default:
		out = append(out, fmt.Sprint(v))
	}
	return out
}
