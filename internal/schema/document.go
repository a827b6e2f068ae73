package schema

import (
	"espedit/internal/errors"
)

// DocKind identifies which document variant a session holds.
type DocKind int

// Document kinds
const (
	ConfigKind DocKind = iota
	MatchFileKind
)

func (k DocKind) String() string {
	if k == ConfigKind {
		return "config"
	}
	return "match file"
}

// Document is the closed variant over the two editable document kinds.
// Exactly one of Config and MatchFile is non-nil, matching Kind.
type Document struct {
	Kind      DocKind
	Config    *Config
	MatchFile *MatchFile
}

// ParseDocument decodes bytes according to the requested kind.
func ParseDocument(kind DocKind, data []byte) (Document, error) {
	switch kind {
	case ConfigKind:
		cfg, err := ParseConfig(data)
		if err != nil {
			return Document{}, err
		}
		return Document{Kind: ConfigKind, Config: cfg}, nil
	case MatchFileKind:
		mf, err := ParseMatchFile(data)
		if err != nil {
			return Document{}, err
		}
		return Document{Kind: MatchFileKind, MatchFile: mf}, nil
	}
	return Document{}, errors.Newf("unknown document kind %d", kind)
}

// Serialize renders the document back to YAML bytes.
func (d Document) Serialize() ([]byte, error) {
	switch d.Kind {
	case ConfigKind:
		return SerializeConfig(d.Config)
	case MatchFileKind:
		return SerializeMatchFile(d.MatchFile)
	}
	return nil, errors.Newf("unknown document kind %d", d.Kind)
}

// Equal reports semantic equality of two documents.
func (d Document) Equal(other Document) bool {
	if d.Kind != other.Kind {
		return false
	}
	if d.Kind == ConfigKind {
		return d.Config.Equal(other.Config)
	}
	return d.MatchFile.Equal(other.MatchFile)
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{Kind: d.Kind}
	if d.Config != nil {
		out.Config = d.Config.Clone()
	}
	if d.MatchFile != nil {
		out.MatchFile = d.MatchFile.Clone()
	}
	return out
}
