package integration

import (
	"fmt"
	"path/filepath"
	"strings"
)

// configPath 返回 testdata 下的夹具路径。
func configPath(parts ...string) string {
	return filepath.Join(append([]string{"..", "testdata"}, parts...)...)
}

// normalizeConfig 标准化配置文本用于比较：
// 1. 去除首尾空白
// 2. 统一换行符
func normalizeConfig(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return text
}

// compareConfigs 比较配置内容，忽略不重要的空白差异。
func compareConfigs(got, want string) bool {
	return normalizeConfig(got) == normalizeConfig(want)
}

// formatConfigDiff 格式化配置差异信息，定位首个不同的行。
func formatConfigDiff(got, want string) string {
	gotLines := strings.Split(normalizeConfig(got), "\n")
	wantLines := strings.Split(normalizeConfig(want), "\n")

	limit := len(gotLines)
	if len(wantLines) < limit {
		limit = len(wantLines)
	}
	for i := 0; i < limit; i++ {
		if gotLines[i] != wantLines[i] {
			return fmt.Sprintf("line %d differs:\ngot  %q\nwant %q", i+1, gotLines[i], wantLines[i])
		}
	}
	return fmt.Sprintf("line count differs: got %d, want %d", len(gotLines), len(wantLines))
}
