package game

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kmoroz/repodelve/internal/world"
)

// Config holds the tunable parameters of a session. All fields have
// sensible defaults; a YAML config file overrides only what it names.
type Config struct {
	// Seed for random number generation, for reproducible dungeons.
	// A seed of 0 means a time-based seed.
	Seed int64 `yaml:"seed"`

	// GridSize is the dungeon side length in tiles. 0 derives it from
	// the content list: half the repository count, floored at MinGridSize
	// and capped at world.DefaultSize.
	GridSize int `yaml:"grid_size"`
	// RoomTarget is how many rooms the generator aims for. 0 derives it
	// from the content list (one room per repository).
	RoomTarget int `yaml:"room_target"`

	// FOV is the horizontal field of view in radians.
	FOV float64 `yaml:"fov"`
	// RayCount is the number of rays per frame. 0 means one per screen
	// column, set by the front end.
	RayCount int `yaml:"ray_count"`
	// MaxDepth is the ray cutoff distance in pixels.
	MaxDepth float64 `yaml:"max_depth"`
	// StepSize is the ray march increment in pixels.
	StepSize float64 `yaml:"step_size"`

	Speed         float64 `yaml:"speed"`          // pixels per frame
	RotationSpeed float64 `yaml:"rotation_speed"` // radians per frame
	CheckDistance float64 `yaml:"check_distance"` // look-ahead projection, pixels

	// DoorCheckMS throttles the facing query, in milliseconds. Purely a
	// CPU bound; it only affects how stale the facing indicator may be.
	DoorCheckMS int `yaml:"door_check_ms"`
}

// DoorCheckInterval returns the facing-query throttle as a duration.
func (c Config) DoorCheckInterval() time.Duration {
	return time.Duration(c.DoorCheckMS) * time.Millisecond
}

// MinGridSize floors the derived dungeon size so users with a handful of
// repositories still get a walkable dungeon.
const MinGridSize = 32

// DefaultConfig returns the compiled-in defaults.
func DefaultConfig() Config {
	return Config{
		FOV:           math.Pi / 3,
		MaxDepth:      1280,
		StepSize:      2,
		Speed:         8,
		RotationSpeed: 0.07,
		CheckDistance: 80,
		DoorCheckMS:   100,
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Dimensions resolves the grid size and room target for a content list of
// the given length, honoring explicit overrides.
func (c Config) Dimensions(contentCount int) (size, rooms int) {
	size = c.GridSize
	if size == 0 {
		size = contentCount / 2
		if size < MinGridSize {
			size = MinGridSize
		}
		if size > world.DefaultSize {
			size = world.DefaultSize
		}
	}
	rooms = c.RoomTarget
	if rooms == 0 {
		rooms = contentCount
		if rooms == 0 {
			rooms = 1
		}
	}
	return size, rooms
}
