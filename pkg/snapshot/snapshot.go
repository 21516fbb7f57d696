// Package snapshot records fully resolved run configurations so that two
// training runs can be compared and a run can be proven to match the config
// it was launched with.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/honeybbq/runconfig/pkg/ini"
	"github.com/honeybbq/runconfig/pkg/runconfig"
)

// Snapshot 记录一份完全插值后的配置及其校验和。
type Snapshot struct {
	Taken    time.Time
	Checksum string
	// Values maps "Section.key" to the resolved value.
	Values map[string]string
}

// Take resolves every value of cfg and captures the result. The checksum is
// computed over the canonical INI rendering of the resolved document, so two
// configs that resolve identically share a checksum regardless of comments
// or whitespace in their source files.
func Take(cfg *runconfig.Config) (*Snapshot, error) {
	doc, err := cfg.Resolved()
	if err != nil {
		return nil, err
	}

	rendered := ini.Render(doc)
	sum := sha256.Sum256(rendered)

	values := make(map[string]string)
	for _, sec := range doc.Sections {
		for _, key := range sec.Keys {
			values[sec.Name+"."+key] = sec.Values[key]
		}
	}

	return &Snapshot{
		Taken:    time.Now(),
		Checksum: hex.EncodeToString(sum[:]),
		Values:   values,
	}, nil
}

// DiffResult 描述两份快照之间的差异。
type DiffResult struct {
	Added   map[string]string
	Removed map[string]string
	Changed map[string][2]string
}

// Empty reports whether the two snapshots resolved identically.
func (d *DiffResult) Empty() bool {
	return d == nil || (len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0)
}

// Diff compares base against target key by key. Added/Removed are keyed the
// same way as Snapshot.Values; Changed holds [base, target] value pairs.
func Diff(base, target *Snapshot) *DiffResult {
	result := &DiffResult{
		Added:   make(map[string]string),
		Removed: make(map[string]string),
		Changed: make(map[string][2]string),
	}
	if base == nil || target == nil {
		return result
	}

	for key, baseVal := range base.Values {
		targetVal, ok := target.Values[key]
		switch {
		case !ok:
			result.Removed[key] = baseVal
		case baseVal != targetVal:
			result.Changed[key] = [2]string{baseVal, targetVal}
		}
	}
	for key, targetVal := range target.Values {
		if _, ok := base.Values[key]; !ok {
			result.Added[key] = targetVal
		}
	}
	return result
}
