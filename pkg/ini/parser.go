package ini

import (
	"fmt"
	"os"
	"strings"

	"github.com/honeybbq/runconfig/pkg/rcerrors"
)

// Parse reads a sectioned key/value document into a Document.
//
// Grammar: "[name]" headers, "key = value" entries, full-line comments
// starting with ';' or '#'. Keys are normalized to lower case; values are
// trimmed of surrounding whitespace (trailing whitespace after a value is
// never significant). Parsing is strict: an entry before the first header,
// a duplicate key within a section, a duplicate section name or a line that
// matches none of the grammar productions fails with a parse error carrying
// the line number.
//
// Parse is pure: the same bytes always yield a value-equal Document.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	var current *Section

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lineno := i + 1
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") {
			name, err := parseHeader(trimmed, lineno)
			if err != nil {
				return nil, err
			}
			if doc.Section(name) != nil {
				return nil, parseErrorf(lineno, "duplicate section [%s]", name)
			}
			current = NewSection(name)
			doc.Sections = append(doc.Sections, current)
			continue
		}

		eq := strings.IndexByte(trimmed, '=')
		if eq < 0 {
			return nil, parseErrorf(lineno, "expected 'key = value', got %q", trimmed)
		}
		key := strings.ToLower(strings.TrimSpace(trimmed[:eq]))
		if key == "" {
			return nil, parseErrorf(lineno, "entry with empty key")
		}
		if current == nil {
			return nil, parseErrorf(lineno, "entry %q before any section header", key)
		}
		if current.Has(key) {
			return nil, parseErrorf(lineno, "duplicate key %q in section [%s]", key, current.Name)
		}
		current.Set(key, strings.TrimSpace(trimmed[eq+1:]))
	}

	return doc, nil
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rcerrors.New(rcerrors.KindParse, fmt.Errorf("read %s: %w", path, err))
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func parseHeader(line string, lineno int) (string, error) {
	if !strings.HasSuffix(line, "]") {
		return "", parseErrorf(lineno, "unterminated section header %q", line)
	}
	name := strings.TrimSpace(line[1 : len(line)-1])
	if name == "" {
		return "", parseErrorf(lineno, "empty section name")
	}
	if strings.ContainsAny(name, "[]") {
		return "", parseErrorf(lineno, "invalid section name %q", name)
	}
	return name, nil
}

func parseErrorf(lineno int, format string, args ...any) error {
	inner := fmt.Sprintf(format, args...)
	return rcerrors.New(rcerrors.KindParse, fmt.Errorf("line %d: %s", lineno, inner))
}
