package effects

// Kind discriminates the effect variants. Binding code switches on Kind
// exhaustively; adding a Kind means handling it at every switch.
type Kind int

const (
	// KindSimple effects sample only the extended screen texture.
	KindSimple Kind = iota
	// KindTiles effects additionally bind the glyph sheet and the
	// per-tile brightness lookup.
	KindTiles
)

// Descriptor is one named entry of the fixed effect roster.
type Descriptor struct {
	Name   string
	Kind   Kind
	Source string
}

// Roster returns the effect roster in its fixed order. Ordinals shown to
// the user (and bound to the number keys) are 1-based positions in this
// slice.
func Roster() []Descriptor {
	return []Descriptor{
		{Name: "passthru", Kind: KindSimple, Source: srcPassthru},
		{Name: "wobbly", Kind: KindSimple, Source: srcWobbly},
		{Name: "lightning", Kind: KindSimple, Source: srcLightning},
		{Name: "sorty", Kind: KindSimple, Source: srcSorty},
		{Name: "tiles", Kind: KindTiles, Source: srcTiles},
	}
}

// Names returns the roster names in order.
func Names() []string {
	roster := Roster()
	names := make([]string, len(roster))
	for i, d := range roster {
		names[i] = d.Name
	}
	return names
}

// IndexByName resolves an effect name to its roster index.
func IndexByName(name string) (int, bool) {
	for i, d := range Roster() {
		if d.Name == name {
			return i, true
		}
	}
	return 0, false
}
