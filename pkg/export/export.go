// Package export renders fully resolved configuration documents into
// interchange formats. Exporters consume a resolved ini.Document (no
// placeholders left); resolution itself is the job of pkg/runconfig.
package export

import (
	"fmt"

	"github.com/honeybbq/runconfig/pkg/ini"
	"github.com/honeybbq/runconfig/pkg/rcerrors"
)

// Exporter 将已解析的文档渲染为某种输出格式。
type Exporter interface {
	// Name returns the format identifier ("ini", "json", "yaml").
	Name() string
	// Export renders the document.
	Export(doc *ini.Document) ([]byte, error)
}

// ByName returns the exporter for a format identifier.
func ByName(name string) (Exporter, error) {
	for _, e := range All() {
		if e.Name() == name {
			return e, nil
		}
	}
	return nil, rcerrors.New(rcerrors.KindValidation,
		fmt.Errorf("unknown export format %q", name))
}

// All returns every built-in exporter.
func All() []Exporter {
	return []Exporter{
		NewINIExporter(),
		NewJSONExporter(),
		NewYAMLExporter(),
	}
}
