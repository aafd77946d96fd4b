package config

import "sort"

// Presets are named overrides applied on top of DefaultConfig.
var Presets = map[string]func(*Config){
	"default": func(*Config) {},
	"calm": func(c *Config) {
		c.Field.Threshold = 8
		c.Physics.StepFactor = 0.05
		c.Render.Palette = "pastel"
	},
	"wide": func(c *Config) {
		c.Field.Threshold = 24
		c.Render.Palette = "medium"
	},
	"dense": func(c *Config) {
		c.Field.MaxParticles = 40000
		c.Field.Threshold = 10
		c.Render.Palette = "dark"
	},
	"springy": func(c *Config) {
		c.Field.Integrator = "spring"
		c.Physics.SpringFrequency = 8
		c.Physics.SpringDamping = 0.3
		c.Render.Palette = "bright"
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
