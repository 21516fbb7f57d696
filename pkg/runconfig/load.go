package runconfig

import (
	"fmt"
	"strings"

	"github.com/honeybbq/runconfig/pkg/ini"
	"github.com/honeybbq/runconfig/pkg/rcerrors"
)

// LoadOptions controls layering applied on top of the base document.
type LoadOptions struct {
	// Extra lists paths of override layer files, merged onto the base in
	// order (later layers win). Typical use: a shared base run config plus
	// a per-experiment delta.
	Extra []string

	// Overrides maps "Section.key" to a raw value, applied after all file
	// layers. This mirrors command line extra-arg overrides.
	Overrides map[string]string
}

// Load reads the base document at path, merges override layers and applies
// key overrides. All failures are fatal to the caller: a training run cannot
// proceed on a partial configuration.
func Load(path string, opts LoadOptions) (*Config, error) {
	doc, err := ini.ParseFile(path)
	if err != nil {
		return nil, err
	}
	for _, extra := range opts.Extra {
		layer, err := ini.ParseFile(extra)
		if err != nil {
			return nil, err
		}
		doc = MergeDocuments(doc, layer)
	}

	cfg := New(doc)
	if err := applyOverrides(cfg, opts.Overrides); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadBytes parses an in-memory document. Mainly for tests and embedding.
func LoadBytes(data []byte) (*Config, error) {
	doc, err := ini.Parse(data)
	if err != nil {
		return nil, err
	}
	return New(doc), nil
}

func applyOverrides(cfg *Config, overrides map[string]string) error {
	for _, spec := range sortedKeys(overrides) {
		section, key, ok := strings.Cut(spec, ".")
		if !ok || section == "" || key == "" {
			return rcerrors.New(rcerrors.KindValidation,
				fmt.Errorf("override %q: want Section.key", spec))
		}
		cfg.Set(section, key, overrides[spec])
	}
	return nil
}
