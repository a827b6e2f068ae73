package schema

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"espedit/internal/errors"
)

// SerializeConfig renders the config back to YAML. Keys that were in
// the file keep their original order; fields set by edits are appended
// in canonical schema order, then unknown keys added since load.
// Unset fields are omitted entirely.
func SerializeConfig(cfg *Config) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	written := make(map[string]bool)

	appendKey := func(key string, valNode *yaml.Node) {
		root.Content = append(root.Content, encodeScalar(key), valNode)
	}

	for _, key := range cfg.keyOrder {
		if written[key] {
			continue
		}
		written[key] = true
		if f, ok := configFieldIndex[key]; ok {
			if n := f.encode(cfg); n != nil {
				appendKey(key, n)
			}
			continue
		}
		if v, ok := cfg.Unknown.Get(key); ok {
			appendKey(key, v.node())
		}
	}
	for _, f := range configFields {
		if written[f.key] {
			continue
		}
		if n := f.encode(cfg); n != nil {
			written[f.key] = true
			appendKey(f.key, n)
		}
	}
	for _, entry := range cfg.Unknown {
		if written[entry.Key] {
			continue
		}
		written[entry.Key] = true
		appendKey(entry.Key, entry.Value.node())
	}

	return renderMapping(root)
}

// SerializeMatchFile renders the match file back to YAML. The matches
// key is always emitted, even for an empty list, so a fresh file is a
// valid espanso document.
func SerializeMatchFile(mf *MatchFile) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	written := make(map[string]bool)

	appendKey := func(key string, valNode *yaml.Node) {
		root.Content = append(root.Content, encodeScalar(key), valNode)
	}

	keyOrder := mf.keyOrder
	if !containsKey(keyOrder, "matches") {
		keyOrder = append(append([]string(nil), keyOrder...), "matches")
	}
	for _, key := range keyOrder {
		if written[key] {
			continue
		}
		written[key] = true
		if key == "matches" {
			appendKey(key, matchesNode(mf.Matches))
			continue
		}
		if v, ok := mf.Unknown.Get(key); ok {
			appendKey(key, v.node())
		}
	}
	for _, entry := range mf.Unknown {
		if written[entry.Key] {
			continue
		}
		written[entry.Key] = true
		appendKey(entry.Key, entry.Value.node())
	}

	return renderMapping(root)
}

func matchesNode(matches []Match) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if len(matches) == 0 {
		seq.Style = yaml.FlowStyle
		return seq
	}
	for i := range matches {
		seq.Content = append(seq.Content, matchNode(&matches[i]))
	}
	return seq
}

func matchNode(m *Match) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	written := make(map[string]bool)

	appendKey := func(key string, valNode *yaml.Node) {
		node.Content = append(node.Content, encodeScalar(key), valNode)
	}

	for _, key := range m.keyOrder {
		if written[key] {
			continue
		}
		written[key] = true
		if f, ok := matchFieldIndex[key]; ok {
			if n := f.encode(m); n != nil {
				appendKey(key, n)
			}
			continue
		}
		if v, ok := m.Unknown.Get(key); ok {
			appendKey(key, v.node())
		}
	}
	for _, f := range matchFields {
		if written[f.key] {
			continue
		}
		if n := f.encode(m); n != nil {
			written[f.key] = true
			appendKey(f.key, n)
		}
	}
	for _, entry := range m.Unknown {
		if written[entry.Key] {
			continue
		}
		written[entry.Key] = true
		appendKey(entry.Key, entry.Value.node())
	}
	return node
}

func encodeStringList(list []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if len(list) == 0 {
		seq.Style = yaml.FlowStyle
	}
	for _, s := range list {
		seq.Content = append(seq.Content, encodeScalar(s))
	}
	return seq
}

// renderMapping encodes the assembled mapping node. An empty mapping
// renders as an empty document rather than "{}".
func renderMapping(root *yaml.Node) ([]byte, error) {
	if len(root.Content) == 0 {
		return []byte{}, nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, errors.Wrap(err, "failed to serialize document")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to serialize document")
	}
	return buf.Bytes(), nil
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
