package config

// Presets are the stock plane designs used by the CLI and tests.
var Presets = map[string]Plane{
	"trainer": {
		Name: "trainer", Mass: 0.05, Inertia: 0.05,
		Lift: 0.10, Drag: 0.02,
	},
	"dart": {
		Name: "dart", Mass: 0.04, Inertia: 0.04,
		Lift: 0.06, Drag: 0.012,
	},
	"brick": {
		Name: "brick", Mass: 0.12, Inertia: 0.08,
		Lift: 0.03, Drag: 0.05,
	},
	"crooked": {
		Name: "crooked", Mass: 0.05, Inertia: 0.05,
		Lift: 0.10, Drag: 0.025, Unbalanced: true,
	},
}

// GetPreset returns a stock design by name, or nil-equivalent false.
func GetPreset(name string) (Plane, bool) {
	p, ok := Presets[name]
	return p, ok
}

// ListPresets returns the stock design names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
