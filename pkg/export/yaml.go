package export

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/honeybbq/runconfig/pkg/ini"
	"github.com/honeybbq/runconfig/pkg/rcerrors"
)

// YAMLExporter renders the document as a two-level YAML mapping.
// yaml.Node 而非 map，保证输出保持文档中的 Section 与键顺序。
type YAMLExporter struct{}

func NewYAMLExporter() *YAMLExporter {
	return &YAMLExporter{}
}

func (e *YAMLExporter) Name() string { return "yaml" }

func (e *YAMLExporter) Export(doc *ini.Document) ([]byte, error) {
	if doc == nil {
		return nil, rcerrors.New(rcerrors.KindInternal, fmt.Errorf("document is nil"))
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, sec := range doc.Sections {
		if sec == nil || sec.Name == "" {
			continue
		}
		mapping := &yaml.Node{Kind: yaml.MappingNode}
		for _, key := range sec.Keys {
			mapping.Content = append(mapping.Content,
				scalarNode(key), scalarNode(sec.Values[key]))
		}
		root.Content = append(root.Content, scalarNode(sec.Name), mapping)
	}

	data, err := yaml.Marshal(root)
	if err != nil {
		return nil, rcerrors.New(rcerrors.KindInternal, err)
	}
	return data, nil
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: value,
	}
}
