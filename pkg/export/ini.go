package export

import (
	"fmt"

	"github.com/honeybbq/runconfig/pkg/ini"
	"github.com/honeybbq/runconfig/pkg/rcerrors"
)

// INIExporter writes the document back as INI text, preserving section and
// key order. Rendering a resolved document this way is how a run config is
// archived into save_dir for later reproduction.
type INIExporter struct{}

func NewINIExporter() *INIExporter {
	return &INIExporter{}
}

func (e *INIExporter) Name() string { return "ini" }

func (e *INIExporter) Export(doc *ini.Document) ([]byte, error) {
	if doc == nil {
		return nil, rcerrors.New(rcerrors.KindInternal, fmt.Errorf("document is nil"))
	}
	return ini.Render(doc), nil
}
