package toolbar

// Builder assembles a Toolbar section by section. Sections are separated
// automatically; separators never lead, trail, or repeat.
type Builder struct {
	name    string
	section string
	entries []Entry
	pending bool
}

// NewBuilder starts a toolbar with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// BeginSection starts a new section. Entries added afterwards carry its name
// and are separated from the previous section.
func (b *Builder) BeginSection(name string) *Builder {
	if name != b.section && len(b.entries) > 0 {
		b.pending = true
	}
	b.section = name
	return b
}

// AddEntry appends a button or spacer. A separator entry is treated like
// AddSeparator.
func (b *Builder) AddEntry(e Entry) *Builder {
	if e.Kind == KindSeparator {
		return b.AddSeparator()
	}
	if e.Kind == "" {
		e.Kind = KindButton
	}
	b.flush()
	e.Section = b.section
	b.entries = append(b.entries, e)
	return b
}

// AddSeparator requests a separator before the next entry.
func (b *Builder) AddSeparator() *Builder {
	if len(b.entries) > 0 {
		b.pending = true
	}
	return b
}

// AddSpacer appends a stretchable blank entry.
func (b *Builder) AddSpacer(name string) *Builder {
	return b.AddEntry(Entry{Name: name, Kind: KindSpacer})
}

func (b *Builder) flush() {
	if !b.pending {
		return
	}
	b.pending = false
	b.entries = append(b.entries, Entry{
		Kind:    KindSeparator,
		Section: b.section,
		// Separators go before the buttons next to them.
		Priority: 1 << 20,
	})
}

// Build returns the assembled toolbar. The builder may keep being used.
func (b *Builder) Build() *Toolbar {
	entries := make([]Entry, len(b.entries))
	copy(entries, b.entries)
	return &Toolbar{Name: b.name, Entries: entries}
}
