package schema

import (
	"gopkg.in/yaml.v3"
)

// Match is one text-expansion rule. A rule is activated either by a
// single Trigger or by a set of Triggers; Replace holds the plain
// replacement text, Form the multi-field snippet layout when the rule
// uses one. Everything else espanso supports per match (vars, html,
// image_path, ...) rides along in Unknown.
type Match struct {
	Trigger        *string
	Triggers       []string
	Replace        *string
	Label          *string
	Word           *bool
	LeftWord       *bool
	RightWord      *bool
	PropagateCase  *bool
	UppercaseStyle *string
	Form           *string

	Unknown Fields

	keyOrder []string
}

// MatchFile is an ordered sequence of matches plus whatever per-file
// metadata the document carries (global_vars, imports, ...), which is
// preserved in Unknown.
type MatchFile struct {
	Matches []Match

	Unknown Fields

	keyOrder []string
}

// TriggerStrings returns every trigger string the match responds to,
// whichever of the two trigger forms is populated.
func (m *Match) TriggerStrings() []string {
	if m.Trigger != nil {
		return []string{*m.Trigger}
	}
	return m.Triggers
}

// HasTrigger reports whether either trigger form is populated.
func (m *Match) HasTrigger() bool {
	return m.Trigger != nil || len(m.Triggers) > 0
}

// matchField mirrors configField for the per-match schema table.
type matchField struct {
	key    string
	decode func(m *Match, n *yaml.Node) error
	encode func(m *Match) *yaml.Node
	equal  func(a, b *Match) bool
}

func matchStr(key string, get func(*Match) **string) matchField {
	return matchField{
		key: key,
		decode: func(m *Match, n *yaml.Node) error {
			s, err := decodeString(n)
			if err != nil {
				return err
			}
			*get(m) = &s
			return nil
		},
		encode: func(m *Match) *yaml.Node {
			if p := *get(m); p != nil {
				return encodeScalar(*p)
			}
			return nil
		},
		equal: func(a, b *Match) bool { return ptrEq(*get(a), *get(b)) },
	}
}

func matchBool(key string, get func(*Match) **bool) matchField {
	return matchField{
		key: key,
		decode: func(m *Match, n *yaml.Node) error {
			v, err := decodeBool(n)
			if err != nil {
				return err
			}
			*get(m) = &v
			return nil
		},
		encode: func(m *Match) *yaml.Node {
			if p := *get(m); p != nil {
				return encodeScalar(*p)
			}
			return nil
		},
		equal: func(a, b *Match) bool { return ptrEq(*get(a), *get(b)) },
	}
}

func matchStrList(key string, get func(*Match) *[]string) matchField {
	return matchField{
		key: key,
		decode: func(m *Match, n *yaml.Node) error {
			v, err := decodeStringList(n)
			if err != nil {
				return err
			}
			*get(m) = v
			return nil
		},
		encode: func(m *Match) *yaml.Node {
			if list := *get(m); list != nil {
				return encodeStringList(list)
			}
			return nil
		},
		equal: func(a, b *Match) bool { return strSliceEq(*get(a), *get(b)) },
	}
}

var matchFields = []matchField{
	matchStr("trigger", func(m *Match) **string { return &m.Trigger }),
	matchStrList("triggers", func(m *Match) *[]string { return &m.Triggers }),
	matchStr("replace", func(m *Match) **string { return &m.Replace }),
	matchStr("label", func(m *Match) **string { return &m.Label }),
	matchBool("word", func(m *Match) **bool { return &m.Word }),
	matchBool("left_word", func(m *Match) **bool { return &m.LeftWord }),
	matchBool("right_word", func(m *Match) **bool { return &m.RightWord }),
	matchBool("propagate_case", func(m *Match) **bool { return &m.PropagateCase }),
	matchStr("uppercase_style", func(m *Match) **string { return &m.UppercaseStyle }),
	matchStr("form", func(m *Match) **string { return &m.Form }),
}

var matchFieldIndex = func() map[string]matchField {
	idx := make(map[string]matchField, len(matchFields))
	for _, f := range matchFields {
		idx[f.key] = f
	}
	return idx
}()

// NewMatch returns a match with both editable text fields present but
// empty, the shape the editor's form rows start from.
func NewMatch() Match {
	trigger := ""
	replace := ""
	return Match{Trigger: &trigger, Replace: &replace}
}

// Equal reports semantic equality of two matches.
func (m *Match) Equal(other *Match) bool {
	if m == nil || other == nil {
		return m == other
	}
	for _, f := range matchFields {
		if !f.equal(m, other) {
			return false
		}
	}
	return m.Unknown.Equal(other.Unknown)
}

// Clone returns a deep copy of the match.
func (m *Match) Clone() Match {
	out := *m
	cs := func(p **string) {
		if *p != nil {
			v := **p
			*p = &v
		}
	}
	cb := func(p **bool) {
		if *p != nil {
			v := **p
			*p = &v
		}
	}
	cs(&out.Trigger)
	out.Triggers = cloneStrSlice(m.Triggers)
	cs(&out.Replace)
	cs(&out.Label)
	cb(&out.Word)
	cb(&out.LeftWord)
	cb(&out.RightWord)
	cb(&out.PropagateCase)
	cs(&out.UppercaseStyle)
	cs(&out.Form)
	out.Unknown = m.Unknown.Clone()
	out.keyOrder = append([]string(nil), m.keyOrder...)
	return out
}

// Equal reports semantic equality of two match files, including order
// of matches and preserved unknown fields.
func (mf *MatchFile) Equal(other *MatchFile) bool {
	if mf == nil || other == nil {
		return mf == other
	}
	if len(mf.Matches) != len(other.Matches) {
		return false
	}
	for i := range mf.Matches {
		if !mf.Matches[i].Equal(&other.Matches[i]) {
			return false
		}
	}
	return mf.Unknown.Equal(other.Unknown)
}

// Clone returns a deep copy of the match file.
func (mf *MatchFile) Clone() *MatchFile {
	if mf == nil {
		return nil
	}
	out := &MatchFile{
		Unknown:  mf.Unknown.Clone(),
		keyOrder: append([]string(nil), mf.keyOrder...),
	}
	if mf.Matches != nil {
		out.Matches = make([]Match, len(mf.Matches))
		for i := range mf.Matches {
			out.Matches[i] = mf.Matches[i].Clone()
		}
	}
	return out
}
