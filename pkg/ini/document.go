package ini

// DefaultSection is the section consulted as a fallback when an
// interpolation reference is not found in the referencing section.
const DefaultSection = "DEFAULT"

// Document 表示一份完整的 INI 配置集合。
// Sections 保持文件中的出现顺序，渲染时按原顺序写出。
type Document struct {
	Sections []*Section
}

// Section 是最小 AST 节点，对应一个 "[Name]" 块。
// Keys 记录键的插入顺序，Values 存放原始（未插值）字符串。
type Section struct {
	Name   string
	Keys   []string
	Values map[string]string
}

// NewSection 创建 Section 并初始化内部 map。
func NewSection(name string) *Section {
	return &Section{
		Name:   name,
		Values: make(map[string]string),
	}
}

// Set stores a raw value, appending the key to the order on first sight.
func (s *Section) Set(key, value string) {
	if s == nil {
		return
	}
	if s.Values == nil {
		s.Values = make(map[string]string)
	}
	if _, exists := s.Values[key]; !exists {
		s.Keys = append(s.Keys, key)
	}
	s.Values[key] = value
}

// Get returns the raw value stored under key.
func (s *Section) Get(key string) (string, bool) {
	if s == nil || s.Values == nil {
		return "", false
	}
	value, ok := s.Values[key]
	return value, ok
}

// Has reports whether key exists in the section.
func (s *Section) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Clone 深拷贝 Section。
func (s *Section) Clone() *Section {
	if s == nil {
		return nil
	}
	clone := NewSection(s.Name)
	clone.Keys = append([]string(nil), s.Keys...)
	for key, value := range s.Values {
		clone.Values[key] = value
	}
	return clone
}

// Section returns the named section, or nil if absent.
func (d *Document) Section(name string) *Section {
	if d == nil {
		return nil
	}
	for _, sec := range d.Sections {
		if sec != nil && sec.Name == name {
			return sec
		}
	}
	return nil
}

// AddSection returns the named section, creating and appending it if absent.
func (d *Document) AddSection(name string) *Section {
	if sec := d.Section(name); sec != nil {
		return sec
	}
	sec := NewSection(name)
	d.Sections = append(d.Sections, sec)
	return sec
}

// Clone 深拷贝整个 Document。
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	clone := &Document{Sections: make([]*Section, 0, len(d.Sections))}
	for _, sec := range d.Sections {
		clone.Sections = append(clone.Sections, sec.Clone())
	}
	return clone
}

// Equal reports value equality: same sections in the same order, each with
// the same keys in the same order and the same raw values.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.Sections) != len(other.Sections) {
		return false
	}
	for i, sec := range d.Sections {
		osec := other.Sections[i]
		if sec.Name != osec.Name || len(sec.Keys) != len(osec.Keys) {
			return false
		}
		for j, key := range sec.Keys {
			if key != osec.Keys[j] {
				return false
			}
			if sec.Values[key] != osec.Values[key] {
				return false
			}
		}
	}
	return true
}
