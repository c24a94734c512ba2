package game

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kmoroz/repodelve/internal/content"
	"github.com/kmoroz/repodelve/internal/ui"
)

// frameInterval fixes the render rate. Input events are applied as they
// arrive; the world is drawn once per tick.
const frameInterval = 33 * time.Millisecond

// Game runs a session in the terminal.
type Game struct {
	screen   *ui.Screen
	view     *ui.View
	cfg      Config
	contents []content.Repository
	session  *Session
	running  bool
}

// New creates a terminal game over the given content list.
func New(cfg Config, contents []content.Repository) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		screen:   screen,
		view:     ui.NewView(screen),
		cfg:      cfg,
		contents: contents,
		running:  true,
	}, nil
}

// Run generates the dungeon and drives the frame loop until the player
// quits. The loop keeps scheduling itself while the overlay is open, but
// no pose updates or raycasts happen until it closes.
func (g *Game) Run(ctx context.Context) error {
	g.session = NewSession(ctx, g.cfg, g.contents)
	g.session.SetViewport(g.screen.Size())

	// tcell's PollEvent blocks, so a dedicated goroutine feeds the frame
	// loop. The goroutine exits when the screen is finalized.
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			g.handleEvent(ev)
		case <-ticker.C:
			g.render()
		}
	}

	g.screen.Close()
	return nil
}

// handleEvent routes one terminal event.
func (g *Game) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ev)
	case *tcell.EventResize:
		g.screen.Sync()
		g.session.SetViewport(g.screen.Size())
	}
}

// handleKeyEvent maps keyboard input onto the session's input signals.
func (g *Game) handleKeyEvent(ev *tcell.EventKey) {
	reading := g.session.State() == StateReading

	var in Input
	switch ev.Key() {
	case tcell.KeyCtrlC:
		g.running = false
		return
	case tcell.KeyEscape:
		if !reading {
			g.running = false
			return
		}
		in.CloseOverlay = true
	case tcell.KeyUp:
		if reading {
			g.view.Scroll(-1)
			return
		}
		in.Forward = true
	case tcell.KeyDown:
		if reading {
			g.view.Scroll(1)
			return
		}
		in.Backward = true
	case tcell.KeyPgUp:
		if reading {
			_, h := g.view.Size()
			g.view.Scroll(-h / 2)
			return
		}
	case tcell.KeyPgDn:
		if reading {
			_, h := g.view.Size()
			g.view.Scroll(h / 2)
			return
		}
	case tcell.KeyLeft:
		in.TurnLeft = true
	case tcell.KeyRight:
		in.TurnRight = true
	case tcell.KeyEnter:
		in.Interact = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
			return
		case 'w', 'W':
			in.Forward = true
		case 's', 'S':
			in.Backward = true
		case 'a', 'A':
			in.TurnLeft = true
		case 'd', 'D':
			in.TurnRight = true
		case ' ':
			in.Interact = true
		}
	}

	g.session.Update(in, time.Now())

	// A fresh overlay starts at the top of the README.
	if !reading && g.session.State() == StateReading {
		g.view.ResetScroll()
	}
}

// render draws the current frame: the overlay while reading, the raycast
// view otherwise.
func (g *Game) render() {
	if g.session.State() == StateReading {
		if repo := g.session.Open(); repo != nil {
			g.view.RenderOverlay(repo)
		}
		return
	}

	columns := g.session.Frame()
	facingTile, facingRepo := g.session.Facing()
	g.view.RenderWorld(columns, g.session.Grid, g.session.Player.X, g.session.Player.Y, facingTile, facingRepo)
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
