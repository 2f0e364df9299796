package expander

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/belphemur/dayscheduler/internal/meeting"
	"gopkg.in/yaml.v3"
)

// decodeRecords reads every document in a YAML (or JSON) stream. Each
// document is a mapping or a sequence of mappings; empty documents add nothing.
func decodeRecords(r io.Reader) ([]meeting.Record, error) {
	dec := yaml.NewDecoder(r)
	records := []meeting.Record{}
	for doc := 0; ; doc++ {
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return nil, fmt.Errorf("document %d: %w", doc, err)
		}

		value, err := nodeValue(&node)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", doc, err)
		}

		switch v := value.(type) {
		case nil:
		case map[string]any:
			records = append(records, v)
		case []any:
			for i, item := range v {
				m, ok := item.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("document %d, element %d: %w", doc, i, meeting.ErrNotARecord)
				}
				records = append(records, m)
			}
		default:
			return nil, fmt.Errorf("document %d: %w", doc, meeting.ErrNotARecord)
		}
	}
}

// nodeValue converts a YAML node into plain Go values. Mapping keys always
// become strings. Scalars keep their source text unless they are null,
// booleans or finite numbers, so dates and times pass through untouched.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := nodeValue(child)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.MappingNode:
		return mappingValue(n)
	case yaml.ScalarNode:
		return scalarValue(n)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

func mappingValue(n *yaml.Node) (map[string]any, error) {
	out := make(map[string]any, len(n.Content)/2)
	var merged []map[string]any

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valueNode := n.Content[i], n.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == "!!merge" {
			sources, err := mergeSources(valueNode)
			if err != nil {
				return nil, err
			}
			merged = append(merged, sources...)
			continue
		}

		key, err := keyText(keyNode)
		if err != nil {
			return nil, err
		}
		value, err := nodeValue(valueNode)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}

	// explicit keys win over merged ones, earlier merge sources over later
	for _, source := range merged {
		for k, v := range source {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
	}
	return out, nil
}

func mergeSources(n *yaml.Node) ([]map[string]any, error) {
	value, err := nodeValue(n)
	if err != nil {
		return nil, err
	}
	switch v := value.(type) {
	case map[string]any:
		return []map[string]any{v}, nil
	case []any:
		sources := make([]map[string]any, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("line %d: merge value must be a mapping", n.Line)
			}
			sources = append(sources, m)
		}
		return sources, nil
	default:
		return nil, fmt.Errorf("line %d: merge value must be a mapping", n.Line)
	}
}

// keyText renders any key as text: scalars as written, collections in flow style.
func keyText(n *yaml.Node) (string, error) {
	if n.Kind == yaml.AliasNode {
		return keyText(n.Alias)
	}
	if n.Kind == yaml.ScalarNode {
		return n.Value, nil
	}
	flow := *n
	flow.Style = yaml.FlowStyle
	text, err := yaml.Marshal(&flow)
	if err != nil {
		return "", fmt.Errorf("line %d: cannot render mapping key: %w", n.Line, err)
	}
	return strings.TrimSpace(string(text)), nil
}

func scalarValue(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null", "!!bool", "!!int", "!!float":
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			return n.Value, nil
		}
		return v, nil
	default:
		return n.Value, nil
	}
}
