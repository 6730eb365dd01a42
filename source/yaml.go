package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// maxYAMLNodes bounds alias expansion.
const maxYAMLNodes = 1 << 20

// DecodeYAML reads a single YAML document via yaml.Node so duplicate keys can
// be reported with their positions. An empty stream decodes to nil; a second
// document is an error.
func DecodeYAML(r io.Reader, opt Options) (any, error) {
	dec := yaml.NewDecoder(r)
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, ErrTrailingData
	}
	c := &yamlConverter{strict: opt.Strict}
	return c.node(&doc)
}

type yamlConverter struct {
	strict bool
	path   []string
	nodes  int
}

func (c *yamlConverter) node(n *yaml.Node) (any, error) {
	c.nodes++
	if c.nodes > maxYAMLNodes {
		return nil, errors.New("source: YAML document expands to too many nodes")
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.node(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, nil
		}
		return c.node(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			key := k.Value
			if pos, dup := first[key]; dup && c.strict {
				return nil, &DuplicateKeyError{
					Key: key, Path: pointer(append(c.path, key)),
					Line: k.Line, Col: k.Column, FirstLine: pos[0], FirstCol: pos[1],
				}
			}
			first[key] = [2]int{k.Line, k.Column}
			val, err := c.child(key, v)
			if err != nil {
				return nil, err
			}
			m[key] = val
		}
		return m, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for i, item := range n.Content {
			val, err := c.child(strconv.Itoa(i), item)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalar(n), nil
	}
	return nil, nil
}

func (c *yamlConverter) child(seg string, n *yaml.Node) (any, error) {
	c.path = append(c.path, seg)
	v, err := c.node(n)
	c.path = c.path[:len(c.path)-1]
	return v, err
}

// scalar resolves a scalar by its tag. Values that fail to decode under their
// tag fall back to the raw text.
func scalar(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return i
		}
		var f float64
		if err := n.Decode(&f); err == nil {
			return f
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return f
		}
	}
	return n.Value
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlNumbers(v)); err != nil {
		return fmt.Errorf("source: encode yaml: %w", err)
	}
	return enc.Close()
}

// yamlNumbers rewrites json.Number leaves as int64 or float64 so they render
// as YAML numbers rather than strings.
func yamlNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return string(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = yamlNumbers(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = yamlNumbers(val)
		}
		return out
	}
	return v
}
