package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/restfield/internal/particle"
	"gopkg.in/yaml.v3"
)

const (
	DefaultThreshold       = 12.0
	DefaultCellSize        = 1.0
	DefaultMaxParticles    = 20000
	DefaultGrowthAttempts  = 50
	DefaultIntegrator      = "linear"
	DefaultStepFactor      = 0.1
	DefaultRestEpsilon     = 0.01
	DefaultSpringFrequency = 6.0
	DefaultSpringDamping   = 0.5
	DefaultFPS             = 60
	DefaultTheme           = "cyberpunk"
	DefaultPalette         = "pastel"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Field   FieldConfig   `yaml:"field"`
	Physics PhysicsConfig `yaml:"physics"`
	Engine  EngineConfig  `yaml:"engine"`
	Render  RenderConfig  `yaml:"render"`
	Log     LogConfig     `yaml:"log"`
}

type FieldConfig struct {
	Threshold         float64 `yaml:"threshold"`
	CellSize          float64 `yaml:"cell_size"`
	MaxParticles      int     `yaml:"max_particles"`
	MaxGrowthAttempts int     `yaml:"max_growth_attempts"`
	Integrator        string  `yaml:"integrator"`
}

type PhysicsConfig struct {
	StepFactor      float64 `yaml:"step_factor"`
	RestEpsilon     float64 `yaml:"rest_epsilon"`
	SpringFrequency float64 `yaml:"spring_frequency"`
	SpringDamping   float64 `yaml:"spring_damping"`
}

type EngineConfig struct {
	FPS int `yaml:"fps"`
}

type RenderConfig struct {
	Theme   string `yaml:"theme"`
	Palette string `yaml:"palette"`
	Overlay bool   `yaml:"overlay"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

func DefaultConfig() *Config {
	return &Config{
		Field: FieldConfig{
			Threshold:         DefaultThreshold,
			CellSize:          DefaultCellSize,
			MaxParticles:      DefaultMaxParticles,
			MaxGrowthAttempts: DefaultGrowthAttempts,
			Integrator:        DefaultIntegrator,
		},
		Physics: PhysicsConfig{
			StepFactor:      DefaultStepFactor,
			RestEpsilon:     DefaultRestEpsilon,
			SpringFrequency: DefaultSpringFrequency,
			SpringDamping:   DefaultSpringDamping,
		},
		Engine: EngineConfig{FPS: DefaultFPS},
		Render: RenderConfig{
			Theme:   DefaultTheme,
			Palette: DefaultPalette,
			Overlay: true,
		},
		Log: LogConfig{
			Level:      DefaultLogLevel,
			Format:     DefaultLogFormat,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadOnto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOnto reads a YAML file over cfg; keys missing from the file keep their
// current values.
func LoadOnto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case !(c.Field.CellSize > 0):
		return fmt.Errorf("%w: field.cell_size must be positive, got %g", ErrInvalidConfig, c.Field.CellSize)
	case c.Field.MaxParticles <= 0:
		return fmt.Errorf("%w: field.max_particles must be positive, got %d", ErrInvalidConfig, c.Field.MaxParticles)
	case c.Field.MaxGrowthAttempts <= 0:
		return fmt.Errorf("%w: field.max_growth_attempts must be positive, got %d", ErrInvalidConfig, c.Field.MaxGrowthAttempts)
	case !(c.Physics.StepFactor > 0):
		return fmt.Errorf("%w: physics.step_factor must be positive, got %g", ErrInvalidConfig, c.Physics.StepFactor)
	case !(c.Physics.RestEpsilon > 0):
		return fmt.Errorf("%w: physics.rest_epsilon must be positive, got %g", ErrInvalidConfig, c.Physics.RestEpsilon)
	case c.Engine.FPS <= 0:
		return fmt.Errorf("%w: engine.fps must be positive, got %d", ErrInvalidConfig, c.Engine.FPS)
	}
	if _, err := c.Integrator(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Integrator builds the configured particle integrator.
func (c *Config) Integrator() (particle.Integrator, error) {
	return particle.NewIntegrator(c.Field.Integrator, particle.IntegratorParams{
		StepFactor:      c.Physics.StepFactor,
		FPS:             c.Engine.FPS,
		SpringFrequency: c.Physics.SpringFrequency,
		SpringDamping:   c.Physics.SpringDamping,
	})
}

// FieldConfig converts the file settings into a particle.FieldConfig.
func (c *Config) FieldConfig() (particle.FieldConfig, error) {
	if err := c.Validate(); err != nil {
		return particle.FieldConfig{}, err
	}
	integ, err := c.Integrator()
	if err != nil {
		return particle.FieldConfig{}, err
	}
	return particle.FieldConfig{
		Particle: particle.Config{
			Threshold:   c.Field.Threshold,
			StepFactor:  c.Physics.StepFactor,
			RestEpsilon: c.Physics.RestEpsilon,
			Integrator:  integ,
		},
		Grid: particle.GridConfig{
			CellSize:          c.Field.CellSize,
			MaxParticles:      c.Field.MaxParticles,
			MaxGrowthAttempts: c.Field.MaxGrowthAttempts,
		},
	}, nil
}
