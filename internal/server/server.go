package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kmoroz/repodelve/data"
	"github.com/kmoroz/repodelve/internal/content"
	"github.com/kmoroz/repodelve/internal/content/cache"
	"github.com/kmoroz/repodelve/internal/game"
	"github.com/kmoroz/repodelve/internal/telemetry"
)

// Fetcher retrieves the content list for a username. Satisfied by
// *content.Fetcher; tests substitute their own.
type Fetcher interface {
	FetchRepos(ctx context.Context) ([]content.Repository, error)
}

// Server serves generated dungeons and interactive sessions. One session
// lives per WebSocket connection; the shared grid and registry inside each
// session are read-only after generation, so sessions never share state.
type Server struct {
	cfg   game.Config
	store cache.Storage // optional; nil disables caching

	// newFetcher builds a content fetcher per username, overridable in
	// tests.
	newFetcher func(username string) Fetcher

	upgrader websocket.Upgrader
}

// New creates a server with the given session config, content cache (may be
// nil), and GitHub token (may be empty).
func New(cfg game.Config, store cache.Storage, token string) *Server {
	return &Server{
		cfg:   cfg,
		store: store,
		newFetcher: func(username string) Fetcher {
			return content.NewFetcher(username, token)
		},
		upgrader: websocket.Upgrader{
			// The browser client may be served from anywhere.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP routes: /api/map for a one-shot dungeon and
// /ws for an interactive session.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/map", s.handleMap)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// loadContent resolves a username to its repository list, going through the
// cache when one is configured. The empty username plays the embedded demo
// content.
func (s *Server) loadContent(ctx context.Context, username string) ([]content.Repository, error) {
	if username == "" {
		return data.SampleRepos()
	}

	if s.store != nil {
		repos, ok, err := s.store.LoadRepos(username)
		if err != nil {
			log.Printf("content cache read for %s failed: %v", username, err)
		} else if ok {
			return repos, nil
		}
	}

	repos, err := s.newFetcher(username).FetchRepos(ctx)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if err := s.store.SaveRepos(username, repos); err != nil {
			log.Printf("content cache write for %s failed: %v", username, err)
		}
	}
	return repos, nil
}

// handleMap generates a dungeon for ?user=U and returns it as JSON.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	tracer := telemetry.Tracer("server")
	ctx, span := tracer.Start(r.Context(), "server.map")
	defer span.End()

	username := r.URL.Query().Get("user")
	span.SetAttributes(attribute.String("map.username", username))

	repos, err := s.loadContent(ctx, username)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	cfg := s.cfg
	if seed := r.URL.Query().Get("seed"); seed != "" {
		parsed, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}
		cfg.Seed = parsed
	}

	session := game.NewSession(ctx, cfg, repos)

	w.Header().Set("Content-Type", "application/json")
	resp := MapMessage{
		SessionID: session.ID,
		Size:      session.Grid.Width,
		Grid:      session.Grid.Ints(),
		SpawnX:    session.Spawn.X,
		SpawnY:    session.Spawn.Y,
		Repos:     repos,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("encoding map response: %v", err)
	}
}

// handleWS upgrades the connection and runs one session over it: a join
// message in, then a map push, then input messages in and state pushes out
// until the client goes away.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("failed to upgrade connection: %v", err)
		return
	}
	defer conn.Close()

	session, err := s.join(r.Context(), conn)
	if err != nil {
		s.writeError(conn, err)
		return
	}

	s.serveSession(conn, session)
}

// join reads the join message and builds the session.
func (s *Server) join(ctx context.Context, conn *websocket.Conn) (*game.Session, error) {
	var base BaseMessage
	if err := conn.ReadJSON(&base); err != nil {
		return nil, err
	}
	var joinMsg JoinMessage
	if err := json.Unmarshal(base.Payload, &joinMsg); err != nil {
		return nil, err
	}

	repos, err := s.loadContent(ctx, joinMsg.Username)
	if err != nil {
		return nil, err
	}

	cfg := s.cfg
	if joinMsg.Seed != 0 {
		cfg.Seed = joinMsg.Seed
	}

	session := game.NewSession(ctx, cfg, repos)

	msg, err := envelope(MessageTypeMap, MapMessage{
		SessionID: session.ID,
		Size:      session.Grid.Width,
		Grid:      session.Grid.Ints(),
		SpawnX:    session.Spawn.X,
		SpawnY:    session.Spawn.Y,
		Repos:     repos,
	})
	if err != nil {
		return nil, err
	}
	if err := conn.WriteJSON(msg); err != nil {
		return nil, err
	}
	return session, nil
}

// serveSession applies input messages to the session and pushes the
// resulting state. The loop is driven by the client: one update per input
// message, matching the cooperative per-frame model.
func (s *Server) serveSession(conn *websocket.Conn, session *game.Session) {
	var lastFacing FacingMessage

	for {
		var base BaseMessage
		if err := conn.ReadJSON(&base); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("session %s read error: %v", session.ID, err)
			}
			return
		}
		if base.Type != MessageTypeInput {
			continue
		}

		var in InputMessage
		if err := json.Unmarshal(base.Payload, &in); err != nil {
			s.writeError(conn, err)
			continue
		}

		wasReading := session.State() == game.StateReading
		session.Update(game.Input{
			Forward:      in.Forward,
			Backward:     in.Backward,
			TurnLeft:     in.TurnLeft,
			TurnRight:    in.TurnRight,
			Interact:     in.Interact,
			CloseOverlay: in.CloseOverlay,
		}, time.Now())

		state, _ := envelope(MessageTypeState, StateMessage{
			X:     session.Player.X,
			Y:     session.Player.Y,
			Angle: session.Player.Angle,
			State: session.State().String(),
		})
		if err := conn.WriteJSON(state); err != nil {
			return
		}

		facing := s.facingMessage(session)
		if facing != lastFacing {
			msg, _ := envelope(MessageTypeFacing, facing)
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
			lastFacing = facing
		}

		// Announce a freshly opened overlay exactly once.
		if !wasReading && session.State() == game.StateReading {
			if repo := session.Open(); repo != nil {
				msg, _ := envelope(MessageTypeOpen, OpenMessage{Index: session.OpenIndex(), Repo: *repo})
				if err := conn.WriteJSON(msg); err != nil {
					return
				}
			}
		}
	}
}

func (s *Server) facingMessage(session *game.Session) FacingMessage {
	tile, repo := session.Facing()
	msg := FacingMessage{Tile: int(tile), Index: session.FacingIndex()}
	if repo != nil {
		msg.Title = repo.Title
	}
	return msg
}

func (s *Server) writeError(conn *websocket.Conn, err error) {
	msg, merr := envelope(MessageTypeError, ErrorMessage{Message: err.Error()})
	if merr != nil {
		return
	}
	_ = conn.WriteJSON(msg)
}
