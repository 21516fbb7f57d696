package export

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/honeybbq/runconfig/pkg/ini"
	"github.com/honeybbq/runconfig/pkg/rcerrors"
)

func sampleDoc(t *testing.T) *ini.Document {
	t.Helper()
	doc, err := ini.Parse([]byte("[Save]\nsave_dir = result/ptb-debug\nconfig_file = result/ptb-debug/config.ini\n[Run]\ndebug = true\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestByName(t *testing.T) {
	for _, name := range []string{"ini", "json", "yaml"} {
		exporter, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		if exporter.Name() != name {
			t.Fatalf("exporter %q reports name %q", name, exporter.Name())
		}
	}
	if _, err := ByName("toml"); !rcerrors.IsKind(err, rcerrors.KindValidation) {
		t.Fatalf("expected KindValidation for unknown format, got %v", err)
	}
}

func TestINIExport(t *testing.T) {
	data, err := NewINIExporter().Export(sampleDoc(t))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	again, err := ini.Parse(data)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if !sampleDoc(t).Equal(again) {
		t.Fatalf("ini export must round-trip:\n%s", data)
	}
}

func TestJSONExport(t *testing.T) {
	data, err := NewJSONExporter().Export(sampleDoc(t))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var out map[string]map[string]string
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["Save"]["save_dir"] != "result/ptb-debug" {
		t.Fatalf("unexpected save_dir: %q", out["Save"]["save_dir"])
	}
	// 值保持字符串，不做类型猜测
	if out["Run"]["debug"] != "true" {
		t.Fatalf("values must stay strings, got %q", out["Run"]["debug"])
	}
}

func TestYAMLExport(t *testing.T) {
	data, err := NewYAMLExporter().Export(sampleDoc(t))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var out map[string]map[string]string
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["Save"]["config_file"] != "result/ptb-debug/config.ini" {
		t.Fatalf("unexpected config_file: %q", out["Save"]["config_file"])
	}
	if out["Run"]["debug"] != "true" {
		t.Fatalf("values must stay strings, got %q", out["Run"]["debug"])
	}
	// Section 顺序与文档一致
	if !strings.HasPrefix(string(data), "Save:") {
		t.Fatalf("yaml output should preserve section order:\n%s", data)
	}
}

func TestExportNilDocument(t *testing.T) {
	for _, exporter := range All() {
		if _, err := exporter.Export(nil); !rcerrors.IsKind(err, rcerrors.KindInternal) {
			t.Fatalf("%s: expected KindInternal on nil document, got %v", exporter.Name(), err)
		}
	}
}
