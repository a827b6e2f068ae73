package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"espedit/internal/errors"
)

// ParseConfig decodes a configuration document. Unrecognized keys are
// never an error; a recognized key holding a value of the wrong type
// fails with a TypeMismatch error carrying the key name.
func ParseConfig(data []byte) (*Config, error) {
	root, err := decodeRoot(data, "config")
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if root == nil {
		return cfg, nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		valNode := root.Content[i+1]
		cfg.keyOrder = append(cfg.keyOrder, key)
		if f, ok := configFieldIndex[key]; ok {
			if err := f.decode(cfg, valNode); err != nil {
				return nil, errors.NewParseError("wrong type for config option", key, errors.TypeMismatch, err)
			}
			continue
		}
		v, err := valueFromNode(valNode)
		if err != nil {
			return nil, errors.NewParseError("unreadable config value", key, errors.Malformed, err)
		}
		cfg.Unknown = cfg.Unknown.Set(key, v)
	}
	return cfg, nil
}

// ParseMatchFile decodes a match document. A file with zero matches is
// valid, as is an empty or comment-only document.
func ParseMatchFile(data []byte) (*MatchFile, error) {
	root, err := decodeRoot(data, "match file")
	if err != nil {
		return nil, err
	}
	mf := &MatchFile{}
	if root == nil {
		return mf, nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		valNode := root.Content[i+1]
		mf.keyOrder = append(mf.keyOrder, key)
		if key == "matches" {
			matches, err := decodeMatches(valNode)
			if err != nil {
				return nil, err
			}
			mf.Matches = matches
			continue
		}
		v, err := valueFromNode(valNode)
		if err != nil {
			return nil, errors.NewParseError("unreadable value", key, errors.Malformed, err)
		}
		mf.Unknown = mf.Unknown.Set(key, v)
	}
	return mf, nil
}

func decodeMatches(node *yaml.Node) ([]Match, error) {
	node = resolveAlias(node)
	if node.Tag == "!!null" {
		return []Match{}, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, errors.NewParseError("matches must be a list", "matches", errors.TypeMismatch, nil)
	}
	matches := make([]Match, 0, len(node.Content))
	for _, item := range node.Content {
		m, err := decodeMatch(item)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func decodeMatch(node *yaml.Node) (Match, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return Match{}, errors.NewParseError("each match must be a mapping", "matches", errors.TypeMismatch, nil)
	}
	m := Match{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		valNode := node.Content[i+1]
		m.keyOrder = append(m.keyOrder, key)
		if f, ok := matchFieldIndex[key]; ok {
			if err := f.decode(&m, valNode); err != nil {
				return Match{}, errors.NewParseError("wrong type for match field", key, errors.TypeMismatch, err)
			}
			continue
		}
		v, err := valueFromNode(valNode)
		if err != nil {
			return Match{}, errors.NewParseError("unreadable match value", key, errors.Malformed, err)
		}
		m.Unknown = m.Unknown.Set(key, v)
	}
	return m, nil
}

// decodeRoot parses raw bytes and returns the top-level mapping node,
// or nil for an empty document. Espanso treats empty and comment-only
// files as valid, so we do too.
func decodeRoot(data []byte, what string) (*yaml.Node, error) {
	if isYAMLEmpty(string(data)) {
		return nil, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewParseError(fmt.Sprintf("malformed %s document", what), "", errors.Malformed, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := resolveAlias(doc.Content[0])
	if root.Tag == "!!null" {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.NewParseError(fmt.Sprintf("%s document must be a mapping", what), "", errors.Malformed, nil)
	}
	return root, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// isYAMLEmpty reports whether the document contains only blank lines
// and comments.
func isYAMLEmpty(doc string) bool {
	for _, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			return false
		}
	}
	return true
}

func decodeString(node *yaml.Node) (string, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.ScalarNode || (node.Tag != "!!str" && node.Tag != "!!null") {
		return "", fmt.Errorf("expected a string, found %s", describeNode(node))
	}
	return node.Value, nil
}

func decodeBool(node *yaml.Node) (bool, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.ScalarNode || node.Tag != "!!bool" {
		return false, fmt.Errorf("expected a boolean, found %s", describeNode(node))
	}
	var b bool
	if err := node.Decode(&b); err != nil {
		return false, err
	}
	return b, nil
}

func decodeInt(node *yaml.Node) (int, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.ScalarNode || node.Tag != "!!int" {
		return 0, fmt.Errorf("expected an integer, found %s", describeNode(node))
	}
	var i int
	if err := node.Decode(&i); err != nil {
		return 0, err
	}
	return i, nil
}

func decodeInt64(node *yaml.Node) (int64, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.ScalarNode || node.Tag != "!!int" {
		return 0, fmt.Errorf("expected an integer, found %s", describeNode(node))
	}
	var i int64
	if err := node.Decode(&i); err != nil {
		return 0, err
	}
	return i, nil
}

func decodeStringList(node *yaml.Node) ([]string, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected a list of strings, found %s", describeNode(node))
	}
	out := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		s, err := decodeString(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeStringMap(node *yaml.Node) (Fields, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping, found %s", describeNode(node))
	}
	out := make(Fields, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		s, err := decodeString(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, MapEntry{Key: node.Content[i].Value, Value: StringValue(s)})
	}
	return out, nil
}

func describeNode(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		return fmt.Sprintf("%s %q", strings.TrimPrefix(node.Tag, "!!"), node.Value)
	case yaml.SequenceNode:
		return "a list"
	case yaml.MappingNode:
		return "a mapping"
	default:
		return "an unsupported node"
	}
}
