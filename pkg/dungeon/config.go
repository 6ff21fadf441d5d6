package dungeon

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config specifies the parameters governing generation of one Level.
// It supports YAML parsing and validation, matching the ambient
// configuration style used across this module.
type Config struct {
	// RoomsMin and RoomsMax bound the number of rooms attempted.
	RoomsMin int `yaml:"roomsMin" json:"roomsMin"`
	RoomsMax int `yaml:"roomsMax" json:"roomsMax"`

	// RoomAttempts is the number of placement attempts made before
	// giving up on adding further rooms (mirrors the reference's
	// nroom-driven retry loop).
	RoomAttempts int `yaml:"roomAttempts" json:"roomAttempts"`

	// MinRoomSize and MaxRoomSize bound a room's interior width/height.
	MinRoomSize int `yaml:"minRoomSize" json:"minRoomSize"`
	MaxRoomSize int `yaml:"maxRoomSize" json:"maxRoomSize"`

	// SecretDoorChance is the probability (1/n) a door is secret.
	SecretDoorChance int `yaml:"secretDoorChance" json:"secretDoorChance"`

	// LockedDoorChance is the probability (1/n) a door is locked.
	LockedDoorChance int `yaml:"lockedDoorChance" json:"lockedDoorChance"`

	// Mazelike marks generated levels as maze-style (Gehennom, Sokoban
	// variants) via Level.Flags, which downstream passes and the AI
	// consult for teleport/mapping restrictions.
	Mazelike bool `yaml:"mazelike" json:"mazelike"`

	// AllowTraps enables trap placement by pkg/content.
	AllowTraps bool `yaml:"allowTraps" json:"allowTraps"`
	TrapChance int  `yaml:"trapChance" json:"trapChance"`
}

// DefaultConfig returns the reference's default generation parameters for
// an ordinary Dungeons of Doom level.
func DefaultConfig() Config {
	return Config{
		RoomsMin:         6,
		RoomsMax:         11,
		RoomAttempts:     200,
		MinRoomSize:      2,
		MaxRoomSize:      12,
		SecretDoorChance: 5,
		LockedDoorChance: 5,
		AllowTraps:       true,
		TrapChance:       100,
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dungeon config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing dungeon config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("dungeon config validation: %w", err)
	}
	return &cfg, nil
}

// Validate checks all configuration constraints.
func (c *Config) Validate() error {
	if c.RoomsMin < 1 {
		return fmt.Errorf("roomsMin must be at least 1, got %d", c.RoomsMin)
	}
	if c.RoomsMin > c.RoomsMax {
		return fmt.Errorf("roomsMin (%d) must be <= roomsMax (%d)", c.RoomsMin, c.RoomsMax)
	}
	if c.MinRoomSize < 2 {
		return fmt.Errorf("minRoomSize must be at least 2, got %d", c.MinRoomSize)
	}
	if c.MinRoomSize > c.MaxRoomSize {
		return fmt.Errorf("minRoomSize (%d) must be <= maxRoomSize (%d)", c.MinRoomSize, c.MaxRoomSize)
	}
	if c.SecretDoorChance < 1 {
		return fmt.Errorf("secretDoorChance must be at least 1, got %d", c.SecretDoorChance)
	}
	if c.LockedDoorChance < 1 {
		return fmt.Errorf("lockedDoorChance must be at least 1, got %d", c.LockedDoorChance)
	}
	return nil
}

// ToYAML serializes the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash computes a deterministic digest of the configuration, so two
// runs can be checked for identical generation parameters before their
// levels are compared.
func (c *Config) Hash() []byte {
	data, err := c.ToYAML()
	if err != nil {
		h := sha256.New()
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(c.RoomsMin))
		h.Write(buf[:])
		return h.Sum(nil)
	}
	h := sha256.New()
	h.Write(data)
	return h.Sum(nil)
}
