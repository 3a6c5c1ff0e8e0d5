package appconf

// Section is one named group of key/value entries. Keys keep their first
// insertion position; setting an existing key overwrites the value in place.
type Section struct {
	Name string

	keys   []string
	values map[string]string
}

// NewSection creates an empty section with the given name.
func NewSection(name string) *Section {
	return &Section{
		Name:   name,
		values: make(map[string]string),
	}
}

// Set inserts or overwrites an entry. Insertion order is preserved; an
// overwrite keeps the key's original position.
func (s *Section) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value for key and whether the key is present.
// Keys are case sensitive.
func (s *Section) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key is present.
func (s *Section) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Keys returns the entry keys in insertion order.
func (s *Section) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of entries.
func (s *Section) Len() int {
	return len(s.keys)
}

// Clone returns a deep copy of the section. The merge engine uses this for
// the wholesale copy of sections created fresh during a run, so the durable
// document never aliases the after-state document.
func (s *Section) Clone() *Section {
	c := NewSection(s.Name)
	for _, k := range s.keys {
		c.Set(k, s.values[k])
	}
	return c
}

// Equal reports whether both sections carry the same name and the same
// entries in the same order. Order matters: two sections that serialize
// differently are not equal.
func (s *Section) Equal(o *Section) bool {
	if s.Name != o.Name || len(s.keys) != len(o.keys) {
		return false
	}
	for i, k := range s.keys {
		if o.keys[i] != k || o.values[k] != s.values[k] {
			return false
		}
	}
	return true
}

// Document is the in-memory form of one configuration file: an ordered
// sequence of sections, each an ordered key/value mapping. Documents are
// built by Load, mutated only by the merge engine, serialized once, and
// discarded; they carry no identity across invocations.
type Document struct {
	sections []*Section
	index    map[string]*Section
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		index: make(map[string]*Section),
	}
}

// Section returns the named section, or nil when absent.
func (d *Document) Section(name string) *Section {
	return d.index[name]
}

// HasSection reports whether the named section exists.
func (d *Document) HasSection(name string) bool {
	_, ok := d.index[name]
	return ok
}

// EnsureSection returns the named section, creating and appending it when
// absent.
func (d *Document) EnsureSection(name string) *Section {
	if s, ok := d.index[name]; ok {
		return s
	}
	s := NewSection(name)
	d.sections = append(d.sections, s)
	d.index[name] = s
	return s
}

// PutSection installs s, replacing any existing section of the same name in
// place (its position is kept) or appending it otherwise. The document takes
// ownership of s.
func (d *Document) PutSection(s *Section) {
	if old, ok := d.index[s.Name]; ok {
		for i, sec := range d.sections {
			if sec == old {
				d.sections[i] = s
				break
			}
		}
		d.index[s.Name] = s
		return
	}
	d.sections = append(d.sections, s)
	d.index[s.Name] = s
}

// Sections returns the sections in document order, including the default
// bucket when present.
func (d *Document) Sections() []*Section {
	out := make([]*Section, len(d.sections))
	copy(out, d.sections)
	return out
}

// Set inserts or overwrites one entry, creating the section when absent.
func (d *Document) Set(section, key, value string) {
	d.EnsureSection(section).Set(key, value)
}

// Get returns the value at (section, key) and whether it exists.
func (d *Document) Get(section, key string) (string, bool) {
	s, ok := d.index[section]
	if !ok {
		return "", false
	}
	return s.Get(key)
}

// Empty reports whether the document holds no entries at all.
func (d *Document) Empty() bool {
	for _, s := range d.sections {
		if s.Len() > 0 {
			return false
		}
	}
	return true
}
