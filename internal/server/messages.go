// Package server exposes sessions over HTTP and WebSocket.
package server

import (
	"encoding/json"

	"github.com/kmoroz/repodelve/internal/content"
)

// MessageType defines the type of message being sent over the socket.
type MessageType string

const (
	MessageTypeJoin   MessageType = "join"
	MessageTypeMap    MessageType = "map"
	MessageTypeInput  MessageType = "input"
	MessageTypeState  MessageType = "state"
	MessageTypeFacing MessageType = "facing"
	MessageTypeOpen   MessageType = "open"
	MessageTypeError  MessageType = "error"
)

// BaseMessage is the envelope for all socket messages.
type BaseMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// JoinMessage starts a session for a GitHub username. An empty username
// plays the embedded demo content. Seed 0 means a random dungeon.
type JoinMessage struct {
	Username string `json:"username"`
	Seed     int64  `json:"seed,omitempty"`
}

// MapMessage carries the generated dungeon to the client: the grid as
// row-major small integers, the spawn tile, and the content list in the
// order the door registry consumed it.
type MapMessage struct {
	SessionID string               `json:"session_id"`
	Size      int                  `json:"size"`
	Grid      [][]int              `json:"grid"`
	SpawnX    int                  `json:"spawn_x"`
	SpawnY    int                  `json:"spawn_y"`
	Repos     []content.Repository `json:"repos"`
}

// InputMessage is one frame of client input.
type InputMessage struct {
	Forward      bool `json:"forward,omitempty"`
	Backward     bool `json:"backward,omitempty"`
	TurnLeft     bool `json:"turn_left,omitempty"`
	TurnRight    bool `json:"turn_right,omitempty"`
	Interact     bool `json:"interact,omitempty"`
	CloseOverlay bool `json:"close_overlay,omitempty"`
}

// StateMessage reports the player pose after an update.
type StateMessage struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
	State string  `json:"state"`
}

// FacingMessage reports what the look-ahead query sees. Index is -1 when
// the faced tile has no bound content.
type FacingMessage struct {
	Tile  int    `json:"tile"`
	Index int    `json:"index"`
	Title string `json:"title,omitempty"`
}

// OpenMessage tells the client to display a content item.
type OpenMessage struct {
	Index int                `json:"index"`
	Repo  content.Repository `json:"repo"`
}

// ErrorMessage reports a failure to the client.
type ErrorMessage struct {
	Message string `json:"message"`
}

// envelope marshals a payload into a BaseMessage.
func envelope(t MessageType, payload any) (BaseMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return BaseMessage{}, err
	}
	return BaseMessage{Type: t, Payload: raw}, nil
}
