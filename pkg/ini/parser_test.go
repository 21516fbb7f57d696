package ini

import (
	"errors"
	"testing"

	"github.com/honeybbq/runconfig/pkg/rcerrors"
)

const sampleDoc = `; training run configuration
[Data]
data_dir = data
train_file = %(data_dir)s/train.conllx

# save locations
[Save]
save_dir = result/ptb-debug
config_file = %(save_dir)s/config.ini
`

func TestParseBasic(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Name != "Data" || doc.Sections[1].Name != "Save" {
		t.Fatalf("unexpected section order: %v, %v", doc.Sections[0].Name, doc.Sections[1].Name)
	}
	value, ok := doc.Section("Data").Get("train_file")
	if !ok || value != "%(data_dir)s/train.conllx" {
		t.Fatalf("raw value should keep the placeholder, got %q", value)
	}
}

func TestParseTrimsAndLowercases(t *testing.T) {
	doc, err := Parse([]byte("[Save]\n  Load_Vocab_Path =  result/model \n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// 键统一小写，值去除首尾空白
	value, ok := doc.Section("Save").Get("load_vocab_path")
	if !ok {
		t.Fatal("key should be normalized to lower case")
	}
	if value != "result/model" {
		t.Fatalf("trailing whitespace should be trimmed, got %q", value)
	}
}

func TestParseComments(t *testing.T) {
	doc, err := Parse([]byte("[Run]\n; semicolon comment\n# hash comment\ndebug = true\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Section("Run").Keys) != 1 {
		t.Fatalf("comments must not become entries: %v", doc.Section("Run").Keys)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"entry before header", "debug = true\n"},
		{"unterminated header", "[Data\nx = 1\n"},
		{"empty section name", "[]\n"},
		{"duplicate key", "[Run]\ndebug = true\ndebug = false\n"},
		{"duplicate section", "[Run]\n[Run]\n"},
		{"garbage line", "[Run]\nnot an entry\n"},
		{"empty key", "[Run]\n= 1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			if err == nil {
				t.Fatalf("expected parse error for %q", tc.input)
			}
			if !rcerrors.IsKind(err, rcerrors.KindParse) {
				t.Fatalf("expected KindParse, got %v", err)
			}
		})
	}
}

func TestParseIdempotent(t *testing.T) {
	first, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	second, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !first.Equal(second) {
		t.Fatal("parsing the same bytes twice must yield value-equal documents")
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile("testdata/does-not-exist.ini")
	if err == nil {
		t.Fatal("expected error for unreadable file")
	}
	if !rcerrors.IsKind(err, rcerrors.KindParse) {
		t.Fatalf("expected KindParse, got %v", err)
	}
	var kindErr *rcerrors.Error
	if !errors.As(err, &kindErr) {
		t.Fatalf("error should carry a Kind: %v", err)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	again, err := Parse(Render(doc))
	if err != nil {
		t.Fatalf("re-parse rendered output: %v", err)
	}
	if !doc.Equal(again) {
		t.Fatalf("render/parse round trip changed the document:\n%s", Render(again))
	}
}

func TestRenderOrder(t *testing.T) {
	doc := &Document{}
	sec := doc.AddSection("Network")
	sec.Set("word_dims", "100")
	sec.Set("tag_dims", "100")
	sec.Set("lstm_layers", "3")

	want := "[Network]\nword_dims = 100\ntag_dims = 100\nlstm_layers = 3\n"
	if got := string(Render(doc)); got != want {
		t.Fatalf("render order mismatch:\ngot  %q\nwant %q", got, want)
	}
}
