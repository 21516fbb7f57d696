package runconfig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/honeybbq/runconfig/pkg/ini"
	"github.com/honeybbq/runconfig/pkg/rcerrors"
)

// Config wraps a parsed ini.Document and resolves %(key)s interpolation on
// access. A Config is built once, optionally overridden via Set before the
// first accessor call, and treated as read-only afterwards. It is not safe
// for concurrent mutation; the intended model is a single writer during
// startup followed by read-only use.
type Config struct {
	doc   *ini.Document
	cache map[string]string
}

// New wraps an already parsed document.
func New(doc *ini.Document) *Config {
	if doc == nil {
		doc = &ini.Document{}
	}
	return &Config{
		doc:   doc,
		cache: make(map[string]string),
	}
}

// Document returns the underlying document with raw (uninterpolated) values.
func (c *Config) Document() *ini.Document {
	return c.doc
}

// Set overrides a raw value before resolution, creating the section and key
// if absent. Typical use is a command line flag overriding save_dir. The
// resolved-value cache is invalidated because any cached value may have been
// produced through the overridden key.
func (c *Config) Set(section, key, value string) {
	sec := c.doc.AddSection(section)
	sec.Set(strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value))
	c.cache = make(map[string]string)
}

// Sections returns the section names in document order.
func (c *Config) Sections() []string {
	names := make([]string, 0, len(c.doc.Sections))
	for _, sec := range c.doc.Sections {
		names = append(names, sec.Name)
	}
	return names
}

// Keys returns the key names of a section in insertion order.
func (c *Config) Keys(section string) []string {
	sec := c.doc.Section(section)
	if sec == nil {
		return nil
	}
	return append([]string(nil), sec.Keys...)
}

// Has reports whether the section contains the key.
func (c *Config) Has(section, key string) bool {
	sec := c.doc.Section(section)
	return sec != nil && sec.Has(strings.ToLower(key))
}

// Get returns the value with all interpolation references substituted.
// Resolution is depth-first and fails fast: a reference to a nonexistent
// key, a reference cycle or a malformed placeholder aborts the whole
// lookup rather than producing partial output.
func (c *Config) Get(section, key string) (string, error) {
	return c.resolve(section, strings.ToLower(key), make(map[string]bool))
}

// GetInt resolves the value and coerces it to an int.
func (c *Config) GetInt(section, key string) (int, error) {
	value, err := c.Get(section, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, rcerrors.New(rcerrors.KindCoercion,
			fmt.Errorf("[%s] %s: %q is not an integer", section, key, value))
	}
	return n, nil
}

// GetFloat resolves the value and coerces it to a float64.
func (c *Config) GetFloat(section, key string) (float64, error) {
	value, err := c.Get(section, key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, rcerrors.New(rcerrors.KindCoercion,
			fmt.Errorf("[%s] %s: %q is not a float", section, key, value))
	}
	return f, nil
}

// GetBool resolves the value and coerces it to a bool. Accepted literals,
// case-insensitive: "true", "yes", "on", "1" and "false", "no", "off", "0".
// Anything else is a coercion error.
func (c *Config) GetBool(section, key string) (bool, error) {
	value, err := c.Get(section, key)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(value) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, rcerrors.New(rcerrors.KindCoercion,
		fmt.Errorf("[%s] %s: %q is not a boolean", section, key, value))
}

// Resolved returns a copy of the document with every value fully
// interpolated. The copy contains zero remaining placeholder tokens or the
// call fails with the first resolution error encountered.
func (c *Config) Resolved() (*ini.Document, error) {
	resolved := c.doc.Clone()
	for _, sec := range resolved.Sections {
		for _, key := range sec.Keys {
			value, err := c.Get(sec.Name, key)
			if err != nil {
				return nil, err
			}
			sec.Values[key] = value
		}
	}
	return resolved, nil
}

// resolve 返回指定键的插值结果。visiting 记录当前递归路径上的键，
// 用于检测引用环。
func (c *Config) resolve(section, key string, visiting map[string]bool) (string, error) {
	id := section + "\x00" + key
	if value, ok := c.cache[id]; ok {
		return value, nil
	}

	sec := c.doc.Section(section)
	if sec == nil {
		return "", rcerrors.New(rcerrors.KindMissingKey,
			fmt.Errorf("section [%s] not found", section))
	}
	raw, ok := sec.Get(key)
	if !ok {
		return "", rcerrors.New(rcerrors.KindMissingKey,
			fmt.Errorf("key %q not found in section [%s]", key, section))
	}

	if visiting[id] {
		return "", rcerrors.New(rcerrors.KindCircularReference,
			fmt.Errorf("interpolation cycle through [%s] %s", section, key))
	}
	visiting[id] = true
	defer delete(visiting, id)

	value, err := c.expand(section, key, raw, visiting)
	if err != nil {
		return "", err
	}
	c.cache[id] = value
	return value, nil
}

// expand substitutes every %(ref)s placeholder in raw. "%%" is a literal
// percent sign; only the "s" type hint is supported.
func (c *Config) expand(section, key, raw string, visiting map[string]bool) (string, error) {
	if !strings.Contains(raw, "%") {
		return raw, nil
	}

	var b strings.Builder
	for i := 0; i < len(raw); {
		if raw[i] != '%' {
			b.WriteByte(raw[i])
			i++
			continue
		}
		if i+1 >= len(raw) {
			return "", c.placeholderError(section, key, "stray '%' at end of value")
		}
		switch raw[i+1] {
		case '%':
			b.WriteByte('%')
			i += 2
		case '(':
			end := strings.IndexByte(raw[i+2:], ')')
			if end < 0 {
				return "", c.placeholderError(section, key, "unterminated placeholder")
			}
			ref := raw[i+2 : i+2+end]
			hint := i + 2 + end + 1
			if hint >= len(raw) || raw[hint] != 's' {
				return "", c.placeholderError(section, key,
					fmt.Sprintf("placeholder %%(%s) requires the 's' type hint", ref))
			}
			value, err := c.resolveReference(section, ref, visiting)
			if err != nil {
				return "", err
			}
			b.WriteString(value)
			i = hint + 1
		default:
			return "", c.placeholderError(section, key,
				fmt.Sprintf("invalid placeholder syntax near %q", raw[i:]))
		}
	}
	return b.String(), nil
}

// resolveReference 定位引用键并递归求值。
// 查找顺序：当前 Section → DEFAULT → 其余 Section 按文档顺序。
func (c *Config) resolveReference(section, ref string, visiting map[string]bool) (string, error) {
	key := strings.ToLower(strings.TrimSpace(ref))
	if key == "" {
		return "", rcerrors.New(rcerrors.KindUnresolvedReference,
			fmt.Errorf("empty reference in section [%s]", section))
	}

	if sec := c.doc.Section(section); sec != nil && sec.Has(key) {
		return c.resolve(section, key, visiting)
	}
	if sec := c.doc.Section(ini.DefaultSection); sec != nil && sec.Has(key) {
		return c.resolve(ini.DefaultSection, key, visiting)
	}
	for _, sec := range c.doc.Sections {
		if sec.Has(key) {
			return c.resolve(sec.Name, key, visiting)
		}
	}
	return "", rcerrors.New(rcerrors.KindUnresolvedReference,
		fmt.Errorf("reference %%(%s)s in section [%s] matches no key", key, section))
}

func (c *Config) placeholderError(section, key, msg string) error {
	return rcerrors.New(rcerrors.KindParse,
		fmt.Errorf("[%s] %s: %s", section, key, msg))
}
