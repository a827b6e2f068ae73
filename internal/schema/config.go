package schema

import (
	"gopkg.in/yaml.v3"
)

// Config represents one espanso configuration document. Every known
// option is optional; nil means "not set in the file" so defaults stay
// with the host tool. Keys that are not part of the recognized schema
// are carried verbatim in Unknown. The key order observed at parse
// time is recorded so a save touches as little of the file as possible.
type Config struct {
	Label                            *string
	Backend                          *string
	Enable                           *bool
	ClipboardThreshold               *int
	PrePasteDelay                    *int
	ToggleKey                        *string
	AutoRestart                      *bool
	PreserveClipboard                *bool
	RestoreClipboardDelay            *int
	PasteShortcutEventDelay          *int
	PasteShortcut                    *string
	DisableX11FastInject             *bool
	InjectDelay                      *int
	KeyDelay                         *int
	BackspaceDelay                   *int
	EvdevModifierDelay               *int
	WordSeparators                   []string
	BackspaceLimit                   *int
	ApplyPatch                       *bool
	KeyboardLayout                   Fields
	SearchTrigger                    *string
	SearchShortcut                   *string
	UndoBackspace                    *bool
	ShowNotifications                *bool
	ShowIcon                         *bool
	PostFormDelay                    *int
	PostSearchDelay                  *int
	SecureInputNotification          *bool
	EmulateAltCodes                  *bool
	Win32ExcludeOrphanEvents         *bool
	Win32KeyboardLayoutCacheInterval *int64
	X11UseXclipBackend               *bool
	X11UseXdotoolBackend             *bool
	UseStandardIncludes              *bool
	Includes                         []string
	Excludes                         []string
	ExtraIncludes                    []string
	ExtraExcludes                    []string
	FilterTitle                      *string
	FilterClass                      *string
	FilterExec                       *string
	FilterOS                         *string

	// Unknown holds unrecognized top-level keys, preserved verbatim.
	Unknown Fields

	keyOrder []string
}

// Documented defaults for options the form widgets display when the
// file leaves them unset. These mirror espanso's own defaults.
const (
	DefaultBackend   = "Auto"
	DefaultToggleKey = "OFF"
)

// configField binds one recognized key to its typed accessor. The
// slice below is the schema table: adding a key here is all it takes
// to teach the editor a new option.
type configField struct {
	key    string
	decode func(c *Config, n *yaml.Node) error
	encode func(c *Config) *yaml.Node
	equal  func(a, b *Config) bool
}

func strOption(key string, get func(*Config) **string) configField {
	return configField{
		key: key,
		decode: func(c *Config, n *yaml.Node) error {
			s, err := decodeString(n)
			if err != nil {
				return err
			}
			*get(c) = &s
			return nil
		},
		encode: func(c *Config) *yaml.Node {
			if p := *get(c); p != nil {
				return encodeScalar(*p)
			}
			return nil
		},
		equal: func(a, b *Config) bool { return ptrEq(*get(a), *get(b)) },
	}
}

func boolOption(key string, get func(*Config) **bool) configField {
	return configField{
		key: key,
		decode: func(c *Config, n *yaml.Node) error {
			v, err := decodeBool(n)
			if err != nil {
				return err
			}
			*get(c) = &v
			return nil
		},
		encode: func(c *Config) *yaml.Node {
			if p := *get(c); p != nil {
				return encodeScalar(*p)
			}
			return nil
		},
		equal: func(a, b *Config) bool { return ptrEq(*get(a), *get(b)) },
	}
}

func intOption(key string, get func(*Config) **int) configField {
	return configField{
		key: key,
		decode: func(c *Config, n *yaml.Node) error {
			v, err := decodeInt(n)
			if err != nil {
				return err
			}
			*get(c) = &v
			return nil
		},
		encode: func(c *Config) *yaml.Node {
			if p := *get(c); p != nil {
				return encodeScalar(*p)
			}
			return nil
		},
		equal: func(a, b *Config) bool { return ptrEq(*get(a), *get(b)) },
	}
}

func int64Option(key string, get func(*Config) **int64) configField {
	return configField{
		key: key,
		decode: func(c *Config, n *yaml.Node) error {
			v, err := decodeInt64(n)
			if err != nil {
				return err
			}
			*get(c) = &v
			return nil
		},
		encode: func(c *Config) *yaml.Node {
			if p := *get(c); p != nil {
				return encodeScalar(*p)
			}
			return nil
		},
		equal: func(a, b *Config) bool { return ptrEq(*get(a), *get(b)) },
	}
}

func strListOption(key string, get func(*Config) *[]string) configField {
	return configField{
		key: key,
		decode: func(c *Config, n *yaml.Node) error {
			v, err := decodeStringList(n)
			if err != nil {
				return err
			}
			*get(c) = v
			return nil
		},
		encode: func(c *Config) *yaml.Node {
			if list := *get(c); list != nil {
				return encodeStringList(list)
			}
			return nil
		},
		equal: func(a, b *Config) bool { return strSliceEq(*get(a), *get(b)) },
	}
}

func strMapOption(key string, get func(*Config) *Fields) configField {
	return configField{
		key: key,
		decode: func(c *Config, n *yaml.Node) error {
			v, err := decodeStringMap(n)
			if err != nil {
				return err
			}
			*get(c) = v
			return nil
		},
		encode: func(c *Config) *yaml.Node {
			if m := *get(c); m != nil {
				return Value{Kind: Mapping, Map: m}.node()
			}
			return nil
		},
		equal: func(a, b *Config) bool { return (*get(a)).Equal(*get(b)) },
	}
}

// The recognized config schema. Order here is the canonical order for
// keys added by an edit; keys already in the file keep their position.
var configFields = []configField{
	strOption("label", func(c *Config) **string { return &c.Label }),
	strOption("backend", func(c *Config) **string { return &c.Backend }),
	boolOption("enable", func(c *Config) **bool { return &c.Enable }),
	intOption("clipboard_threshold", func(c *Config) **int { return &c.ClipboardThreshold }),
	intOption("pre_paste_delay", func(c *Config) **int { return &c.PrePasteDelay }),
	strOption("toggle_key", func(c *Config) **string { return &c.ToggleKey }),
	boolOption("auto_restart", func(c *Config) **bool { return &c.AutoRestart }),
	boolOption("preserve_clipboard", func(c *Config) **bool { return &c.PreserveClipboard }),
	intOption("restore_clipboard_delay", func(c *Config) **int { return &c.RestoreClipboardDelay }),
	intOption("paste_shortcut_event_delay", func(c *Config) **int { return &c.PasteShortcutEventDelay }),
	strOption("paste_shortcut", func(c *Config) **string { return &c.PasteShortcut }),
	boolOption("disable_x11_fast_inject", func(c *Config) **bool { return &c.DisableX11FastInject }),
	intOption("inject_delay", func(c *Config) **int { return &c.InjectDelay }),
	intOption("key_delay", func(c *Config) **int { return &c.KeyDelay }),
	intOption("backspace_delay", func(c *Config) **int { return &c.BackspaceDelay }),
	intOption("evdev_modifier_delay", func(c *Config) **int { return &c.EvdevModifierDelay }),
	strListOption("word_separators", func(c *Config) *[]string { return &c.WordSeparators }),
	intOption("backspace_limit", func(c *Config) **int { return &c.BackspaceLimit }),
	boolOption("apply_patch", func(c *Config) **bool { return &c.ApplyPatch }),
	strMapOption("keyboard_layout", func(c *Config) *Fields { return &c.KeyboardLayout }),
	strOption("search_trigger", func(c *Config) **string { return &c.SearchTrigger }),
	strOption("search_shortcut", func(c *Config) **string { return &c.SearchShortcut }),
	boolOption("undo_backspace", func(c *Config) **bool { return &c.UndoBackspace }),
	boolOption("show_notifications", func(c *Config) **bool { return &c.ShowNotifications }),
	boolOption("show_icon", func(c *Config) **bool { return &c.ShowIcon }),
	intOption("post_form_delay", func(c *Config) **int { return &c.PostFormDelay }),
	intOption("post_search_delay", func(c *Config) **int { return &c.PostSearchDelay }),
	boolOption("secure_input_notification", func(c *Config) **bool { return &c.SecureInputNotification }),
	boolOption("emulate_alt_codes", func(c *Config) **bool { return &c.EmulateAltCodes }),
	boolOption("win32_exclude_orphan_events", func(c *Config) **bool { return &c.Win32ExcludeOrphanEvents }),
	int64Option("win32_keyboard_layout_cache_interval", func(c *Config) **int64 { return &c.Win32KeyboardLayoutCacheInterval }),
	boolOption("x11_use_xclip_backend", func(c *Config) **bool { return &c.X11UseXclipBackend }),
	boolOption("x11_use_xdotool_backend", func(c *Config) **bool { return &c.X11UseXdotoolBackend }),
	boolOption("use_standard_includes", func(c *Config) **bool { return &c.UseStandardIncludes }),
	strListOption("includes", func(c *Config) *[]string { return &c.Includes }),
	strListOption("excludes", func(c *Config) *[]string { return &c.Excludes }),
	strListOption("extra_includes", func(c *Config) *[]string { return &c.ExtraIncludes }),
	strListOption("extra_excludes", func(c *Config) *[]string { return &c.ExtraExcludes }),
	strOption("filter_title", func(c *Config) **string { return &c.FilterTitle }),
	strOption("filter_class", func(c *Config) **string { return &c.FilterClass }),
	strOption("filter_exec", func(c *Config) **string { return &c.FilterExec }),
	strOption("filter_os", func(c *Config) **string { return &c.FilterOS }),
}

var configFieldIndex = func() map[string]configField {
	idx := make(map[string]configField, len(configFields))
	for _, f := range configFields {
		idx[f.key] = f
	}
	return idx
}()

// KnownConfigKeys lists the recognized config keys in canonical order.
func KnownConfigKeys() []string {
	keys := make([]string, len(configFields))
	for i, f := range configFields {
		keys[i] = f.key
	}
	return keys
}

// Equal reports semantic equality of two configs, including the
// preserved unknown fields.
func (c *Config) Equal(other *Config) bool {
	if c == nil || other == nil {
		return c == other
	}
	for _, f := range configFields {
		if !f.equal(c, other) {
			return false
		}
	}
	return c.Unknown.Equal(other.Unknown)
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.WordSeparators = cloneStrSlice(c.WordSeparators)
	out.Includes = cloneStrSlice(c.Includes)
	out.Excludes = cloneStrSlice(c.Excludes)
	out.ExtraIncludes = cloneStrSlice(c.ExtraIncludes)
	out.ExtraExcludes = cloneStrSlice(c.ExtraExcludes)
	out.KeyboardLayout = c.KeyboardLayout.Clone()
	out.Unknown = c.Unknown.Clone()
	out.keyOrder = append([]string(nil), c.keyOrder...)

	clonePtrs(&out)
	return &out
}

// clonePtrs re-allocates every set pointer field so mutations of the
// copy never reach the original.
func clonePtrs(dst *Config) {
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
	ci := func(p **int) {
		if *p != nil {
			v := **p
			*p = &v
		}
	}
	cs(&dst.Label)
	cs(&dst.Backend)
	cb(&dst.Enable)
	ci(&dst.ClipboardThreshold)
	ci(&dst.PrePasteDelay)
	cs(&dst.ToggleKey)
	cb(&dst.AutoRestart)
	cb(&dst.PreserveClipboard)
	ci(&dst.RestoreClipboardDelay)
	ci(&dst.PasteShortcutEventDelay)
	cs(&dst.PasteShortcut)
	cb(&dst.DisableX11FastInject)
	ci(&dst.InjectDelay)
	ci(&dst.KeyDelay)
	ci(&dst.BackspaceDelay)
	ci(&dst.EvdevModifierDelay)
	ci(&dst.BackspaceLimit)
	cb(&dst.ApplyPatch)
	cs(&dst.SearchTrigger)
	cs(&dst.SearchShortcut)
	cb(&dst.UndoBackspace)
	cb(&dst.ShowNotifications)
	cb(&dst.ShowIcon)
	ci(&dst.PostFormDelay)
	ci(&dst.PostSearchDelay)
	cb(&dst.SecureInputNotification)
	cb(&dst.EmulateAltCodes)
	cb(&dst.Win32ExcludeOrphanEvents)
	if dst.Win32KeyboardLayoutCacheInterval != nil {
		v := *dst.Win32KeyboardLayoutCacheInterval
		dst.Win32KeyboardLayoutCacheInterval = &v
	}
	cb(&dst.X11UseXclipBackend)
	cb(&dst.X11UseXdotoolBackend)
	cb(&dst.UseStandardIncludes)
	cs(&dst.FilterTitle)
	cs(&dst.FilterClass)
	cs(&dst.FilterExec)
	cs(&dst.FilterOS)
}

func ptrEq[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strSliceEq(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneStrSlice(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
