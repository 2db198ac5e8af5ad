// Package socket implements the Unix-domain control protocol of
// spec.md §4.7/§6: newline-delimited JSON commands in, one JSON response
// out per command, each command translated into exactly one coordinator
// mutation. The server sends no unsolicited event messages.
package socket

import "encoding/json"

// Request is one line of the protocol: an object with exactly one
// top-level key naming the command, e.g. {"UpdateBox":{"box_id":"a",...}}.
type Request map[string]json.RawMessage

// Response is the protocol's success/failure envelope (spec.md §4.7).
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

// Event is the shape of an unsolicited server->client message. The
// Server never sends one.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// UpdateBoxParams through ListStreamsParams are the per-command payload
// shapes named in spec.md §6. Only the fields each command needs are
// present; the socket layer unmarshals directly into these.
type UpdateBoxParams struct {
	BoxID   string `json:"box_id"`
	Content string `json:"content"`
}

type AppendBoxParams struct {
	BoxID   string `json:"box_id"`
	Content string `json:"content"`
}

type RefreshBoxParams struct {
	BoxID string `json:"box_id"`
}

type SetBoxPropertyParams struct {
	BoxID    string `json:"box_id"`
	Property string `json:"property"`
	Value    string `json:"value"`
}

type ExecuteScriptParams struct {
	BoxID  string   `json:"box_id"`
	Script []string `json:"script"`
	Append bool     `json:"append"`
}

type RemoveBoxParams struct {
	BoxID string `json:"box_id"`
}

type AddBoxParams struct {
	ParentID   string          `json:"parent_id"`
	Definition json.RawMessage `json:"definition"`
}

type ReplaceBoxParams struct {
	BoxID      string          `json:"box_id"`
	Definition json.RawMessage `json:"definition"`
}

type SendKeyParams struct {
	Key string `json:"key"`
}

type FocusBoxParams struct {
	BoxID string `json:"box_id"`
}

type SwitchLayoutParams struct {
	LayoutID string `json:"layout_id"`
}

type ReloadConfigParams struct {
	ConfigFile string `json:"config_file"`
}

type SpawnPtyParams struct {
	BoxID  string   `json:"box_id"`
	Script []string `json:"script"`
}

type BoxIDParams struct {
	BoxID string `json:"box_id"`
}

type SendPtyInputParams struct {
	BoxID string `json:"box_id"`
	Input string `json:"input"`
}

type CloseStreamParams struct {
	BoxID    string `json:"box_id"`
	StreamID string `json:"stream_id"`
}

type SwitchStreamParams struct {
	BoxID    string `json:"box_id"`
	StreamID string `json:"stream_id"`
}
