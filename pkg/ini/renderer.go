package ini

import (
	"bytes"
	"fmt"
)

// Render 将 Document 渲染为纯文本 INI。
// 输出按 Section 与键的原始顺序写出，块之间以空行分隔。
// Render(Parse(x)) 与 x 在语义上等价（注释与多余空白不保留）。
func Render(doc *Document) []byte {
	if doc == nil {
		return nil
	}

	var buf bytes.Buffer
	for i, sec := range doc.Sections {
		if sec == nil || sec.Name == "" {
			continue
		}
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "[%s]\n", sec.Name)
		for _, key := range sec.Keys {
			fmt.Fprintf(&buf, "%s = %s\n", key, sec.Values[key])
		}
	}
	return buf.Bytes()
}
