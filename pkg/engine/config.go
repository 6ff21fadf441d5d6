package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config governs the game loop's scheduling constants, in the
// same validated-YAML shape as pkg/dungeon.Config.
type Config struct {
	// Speed is the baseline action-point grant per actor per tick.
	Speed int32 `yaml:"speed" json:"speed"`

	// ActionThreshold is the minimum action-point balance an actor needs
	// to take another action this tick.
	ActionThreshold int32 `yaml:"actionThreshold" json:"actionThreshold"`

	// MailChance is the 1/n chance, checked once per turn, that a mail
	// event is delivered (pkg/engine/mail.go).
	MailChance int `yaml:"mailChance" json:"mailChance"`

	// EmergencySaveDir is where a panic recovery writes its diagnostic
	// save.
	EmergencySaveDir string `yaml:"emergencySaveDir" json:"emergencySaveDir"`

	// BonesDir is where a bones-eligible death writes its bones file.
	BonesDir string `yaml:"bonesDir" json:"bonesDir"`

	// HighScoreFile is where the end of a run records its score.
	HighScoreFile string `yaml:"highScoreFile" json:"highScoreFile"`
}

// DefaultConfig returns the reference's default loop scheduling
// parameters.
func DefaultConfig() Config {
	return Config{
		Speed:            12,
		ActionThreshold:  12,
		MailChance:       500,
		EmergencySaveDir: "saves",
		BonesDir:         "bones",
		HighScoreFile:    "scores/record.json",
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading engine config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing engine config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config validation: %w", err)
	}
	return &cfg, nil
}

// Validate checks all configuration constraints.
func (c *Config) Validate() error {
	if c.Speed < 1 {
		return fmt.Errorf("speed must be at least 1, got %d", c.Speed)
	}
	if c.ActionThreshold < 1 {
		return fmt.Errorf("actionThreshold must be at least 1, got %d", c.ActionThreshold)
	}
	if c.MailChance < 1 {
		return fmt.Errorf("mailChance must be at least 1, got %d", c.MailChance)
	}
	if c.EmergencySaveDir == "" {
		return fmt.Errorf("emergencySaveDir must not be empty")
	}
	if c.BonesDir == "" {
		return fmt.Errorf("bonesDir must not be empty")
	}
	if c.HighScoreFile == "" {
		return fmt.Errorf("highScoreFile must not be empty")
	}
	return nil
}

// ToYAML serializes the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}
