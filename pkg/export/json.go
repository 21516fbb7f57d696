package export

import (
	"encoding/json"
	"fmt"

	"github.com/honeybbq/runconfig/pkg/ini"
	"github.com/honeybbq/runconfig/pkg/rcerrors"
)

// JSONExporter renders the document as a two-level JSON object:
// section name → key → value. Values stay strings; typed coercion is the
// consumer's concern, exactly as with the INI original.
type JSONExporter struct{}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (e *JSONExporter) Name() string { return "json" }

func (e *JSONExporter) Export(doc *ini.Document) ([]byte, error) {
	if doc == nil {
		return nil, rcerrors.New(rcerrors.KindInternal, fmt.Errorf("document is nil"))
	}

	out := make(map[string]map[string]string, len(doc.Sections))
	for _, sec := range doc.Sections {
		if sec == nil || sec.Name == "" {
			continue
		}
		values := make(map[string]string, len(sec.Keys))
		for _, key := range sec.Keys {
			values[key] = sec.Values[key]
		}
		out[sec.Name] = values
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, rcerrors.New(rcerrors.KindInternal, err)
	}
	return append(data, '\n'), nil
}
