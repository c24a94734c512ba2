package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kmoroz/repodelve/internal/content"
	"github.com/kmoroz/repodelve/internal/entity"
	"github.com/kmoroz/repodelve/internal/portal"
	"github.com/kmoroz/repodelve/internal/raycast"
	"github.com/kmoroz/repodelve/internal/telemetry"
	"github.com/kmoroz/repodelve/internal/world"
)

// Input is one frame's worth of player intent. The four movement signals
// and the two discrete actions are independent; a frame may carry any
// combination.
type Input struct {
	Forward      bool
	Backward     bool
	TurnLeft     bool
	TurnRight    bool
	Interact     bool
	CloseOverlay bool
}

// Session is one player's complete game state: the generated grid, the
// door-content registry, the player pose, and the overlay/facing state.
// All of it lives here rather than in package globals so any number of
// sessions can coexist in one process.
type Session struct {
	ID       string
	Grid     *world.Grid
	Spawn    world.Point
	Registry *portal.Registry
	Contents []content.Repository
	Player   *entity.Player
	Renderer *raycast.Renderer

	cfg   Config
	state State

	// facing is refreshed by the throttled look-ahead query.
	facingTile  world.Tile
	facingIndex int
	lastCheck   time.Time

	// openIndex is the content item shown while reading, -1 otherwise.
	openIndex int
}

// NewSession generates a dungeon sized for the content list, binds its
// doors, and places the player at the spawn tile.
func NewSession(ctx context.Context, cfg Config, contents []content.Repository) *Session {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "session.init")
	defer span.End()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	size, rooms := cfg.Dimensions(len(contents))
	grid, spawn := world.NewGenerator(size, size, rooms, rng).Generate(ctx)
	registry := portal.Bind(grid, len(contents), rng)

	player := entity.NewPlayer(spawn)
	player.Speed = cfg.Speed
	player.RotationSpeed = cfg.RotationSpeed

	renderer := raycast.NewRenderer(cfg.RayCount, 0)
	renderer.FOV = cfg.FOV
	renderer.MaxDepth = cfg.MaxDepth
	renderer.StepSize = cfg.StepSize

	s := &Session{
		ID:          uuid.NewString(),
		Grid:        grid,
		Spawn:       spawn,
		Registry:    registry,
		Contents:    contents,
		Player:      player,
		Renderer:    renderer,
		cfg:         cfg,
		state:       StateExploring,
		facingTile:  world.TileEmpty,
		facingIndex: -1,
		openIndex:   -1,
	}

	span.SetAttributes(
		attribute.String("session.id", s.ID),
		attribute.Int64("session.seed", seed),
		attribute.Int("session.grid_size", size),
		attribute.Int("session.content_count", len(contents)),
		attribute.Int("session.bound_doors", registry.Len()),
	)
	return s
}

// SetViewport tells the session how big the front end's screen is. Ray
// count zero in the config means one ray per screen column.
func (s *Session) SetViewport(width, height int) {
	if s.cfg.RayCount == 0 {
		s.Renderer.RayCount = width
	}
	s.Renderer.ScreenHeight = height
}

// Update advances the session by one frame of input. While the overlay is
// open only CloseOverlay does anything: the pose, the facing state, and the
// door-check clock all stand still.
func (s *Session) Update(in Input, now time.Time) {
	if s.state == StateReading {
		if in.CloseOverlay {
			s.state = StateExploring
			s.openIndex = -1
		}
		return
	}

	if in.TurnLeft {
		s.Player.TurnLeft()
	}
	if in.TurnRight {
		s.Player.TurnRight()
	}
	if in.Forward {
		s.Player.MoveForward(s.Grid)
	}
	if in.Backward {
		s.Player.MoveBackward(s.Grid)
	}

	// The facing indicator tolerates staleness up to the throttle
	// interval; an explicit interact never waits.
	if now.Sub(s.lastCheck) >= s.cfg.DoorCheckInterval() {
		s.refreshFacing()
		s.lastCheck = now
	}

	if in.Interact {
		s.refreshFacing()
		if s.facingTile == world.TileDoor && s.facingIndex >= 0 {
			s.openIndex = s.facingIndex
			s.state = StateReading
		}
	}
}

func (s *Session) refreshFacing() {
	p, tile := s.Player.Ahead(s.Grid, s.cfg.CheckDistance)
	s.facingTile = tile
	s.facingIndex = -1
	if tile == world.TileDoor {
		if idx, ok := s.Registry.Lookup(p); ok {
			s.facingIndex = idx
		}
	}
}

// Frame renders the current view. While the overlay is open no rays are
// cast; the caller draws the overlay instead.
func (s *Session) Frame() []raycast.Column {
	if s.state == StateReading {
		return nil
	}
	return s.Renderer.RenderFrame(s.Grid, s.Player.Pose())
}

// State returns the session's current mode.
func (s *Session) State() State {
	return s.state
}

// Facing returns what the look-ahead query last saw: the tile code and, for
// a bound door, the repository behind it.
func (s *Session) Facing() (world.Tile, *content.Repository) {
	if s.facingIndex >= 0 && s.facingIndex < len(s.Contents) {
		return s.facingTile, &s.Contents[s.facingIndex]
	}
	return s.facingTile, nil
}

// FacingIndex returns the content index behind the faced door, -1 when the
// player is not facing a bound door.
func (s *Session) FacingIndex() int {
	return s.facingIndex
}

// Open returns the repository shown in the overlay, or nil when closed.
func (s *Session) Open() *content.Repository {
	if s.openIndex >= 0 && s.openIndex < len(s.Contents) {
		return &s.Contents[s.openIndex]
	}
	return nil
}

// OpenIndex returns the content index shown in the overlay, -1 when closed.
func (s *Session) OpenIndex() int {
	return s.openIndex
}
