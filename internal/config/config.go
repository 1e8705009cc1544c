package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Athlete AthleteProfile `json:"athlete"`
	Display DisplayConfig  `json:"display"`
}

// FitnessLevel buckets self-reported training experience
type FitnessLevel string

const (
	FitnessBeginner     FitnessLevel = "beginner"
	FitnessIntermediate FitnessLevel = "intermediate"
	FitnessAdvanced     FitnessLevel = "advanced"
	FitnessElite        FitnessLevel = "elite"
)

// AthleteProfile holds the athlete's physiology. Every field is optional:
// the analysis layer estimates missing values and flags the estimates,
// it never needs this struct to be complete.
type AthleteProfile struct {
	RestingHR    *float64     `json:"resting_hr,omitempty"`
	MaxHR        *float64     `json:"max_hr,omitempty"`
	BodyWeightKg *float64     `json:"body_weight_kg,omitempty"`
	Age          *int         `json:"age,omitempty"`
	FitnessLevel FitnessLevel `json:"fitness_level,omitempty"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	DistanceUnit string `json:"distance_unit"`
	PaceUnit     string `json:"pace_unit"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			DistanceUnit: "km",
			PaceUnit:     "min/km",
		},
	}
}

// Load reads the configuration from ~/.runsight/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing display values
	defaults := DefaultConfig()
	if cfg.Display.DistanceUnit == "" {
		cfg.Display.DistanceUnit = defaults.Display.DistanceUnit
	}
	if cfg.Display.PaceUnit == "" {
		cfg.Display.PaceUnit = defaults.Display.PaceUnit
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.runsight/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Clear removes the stored configuration file if it exists.
func Clear() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing config file: %w", err)
	}
	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	restingHR := 50.0
	maxHR := 185.0
	age := 35

	example := Config{
		Athlete: AthleteProfile{
			RestingHR:    &restingHR,
			MaxHR:        &maxHR,
			Age:          &age,
			FitnessLevel: FitnessIntermediate,
		},
		Display: DisplayConfig{
			DistanceUnit: "km",
			PaceUnit:     "min/km",
		},
	}

	return Save(&example)
}

// Validate checks whether the config values that are present make sense.
// Missing athlete fields are fine - the analysis layer estimates them.
func (c *Config) Validate() error {
	if c.Athlete.RestingHR != nil && (*c.Athlete.RestingHR < 25 || *c.Athlete.RestingHR > 110) {
		return fmt.Errorf("athlete.resting_hr (%v) is outside the plausible 25-110 bpm range", *c.Athlete.RestingHR)
	}
	if c.Athlete.MaxHR != nil && (*c.Athlete.MaxHR < 120 || *c.Athlete.MaxHR > 230) {
		return fmt.Errorf("athlete.max_hr (%v) is outside the plausible 120-230 bpm range", *c.Athlete.MaxHR)
	}
	if c.Athlete.RestingHR != nil && c.Athlete.MaxHR != nil && *c.Athlete.RestingHR >= *c.Athlete.MaxHR {
		return fmt.Errorf("athlete.resting_hr (%v) must be less than athlete.max_hr (%v)", *c.Athlete.RestingHR, *c.Athlete.MaxHR)
	}
	if c.Athlete.Age != nil && (*c.Athlete.Age < 10 || *c.Athlete.Age > 100) {
		return fmt.Errorf("athlete.age (%d) must be between 10 and 100", *c.Athlete.Age)
	}
	if c.Athlete.BodyWeightKg != nil && *c.Athlete.BodyWeightKg <= 0 {
		return fmt.Errorf("athlete.body_weight_kg (%v) must be positive", *c.Athlete.BodyWeightKg)
	}

	switch c.Athlete.FitnessLevel {
	case "", FitnessBeginner, FitnessIntermediate, FitnessAdvanced, FitnessElite:
	default:
		return fmt.Errorf("athlete.fitness_level must be one of beginner, intermediate, advanced, elite; got %q", c.Athlete.FitnessLevel)
	}

	// Validate display units
	if c.Display.DistanceUnit != "" && c.Display.DistanceUnit != "km" && c.Display.DistanceUnit != "mi" {
		return fmt.Errorf("display.distance_unit must be \"km\" or \"mi\", got %q", c.Display.DistanceUnit)
	}
	if c.Display.PaceUnit != "" && c.Display.PaceUnit != "min/km" && c.Display.PaceUnit != "min/mi" {
		return fmt.Errorf("display.pace_unit must be \"min/km\" or \"min/mi\", got %q", c.Display.PaceUnit)
	}

	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".runsight", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".runsight"), nil
}
