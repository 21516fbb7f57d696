package runconfig

import (
	"sort"

	"github.com/honeybbq/runconfig/pkg/ini"
)

// MergeDocuments layers override onto base and returns a new document.
// Neither input is mutated.
//
// Merge rules:
//   - Keys present in both: the override raw value wins. Interpolation is
//     deliberately not resolved before merging, so an override layer may
//     redefine a key (e.g. save_dir) that base values reference.
//   - New keys: appended to the base section in override order.
//   - New sections: appended after the base sections in override order.
//
// Base ordering is preserved so that merged documents render stably.
func MergeDocuments(base, override *ini.Document) *ini.Document {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()
	for _, sec := range override.Sections {
		if sec == nil || sec.Name == "" {
			continue
		}
		target := result.AddSection(sec.Name)
		for _, key := range sec.Keys {
			target.Set(key, sec.Values[key])
		}
	}
	return result
}

// sortedKeys 返回 map 的键并排序，保证遍历顺序确定。
func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
