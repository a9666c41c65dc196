// Package wire defines the WebSocket protocol for interactive schema
// building.
package wire

import "encoding/json"

// ── Client → Server messages ────────────────────────────────────────────────

// ClientMessage is the envelope for all client-to-server WebSocket messages.
type ClientMessage struct {
	Type string          `json:"type"` // "add_field", "remove_field", "set_value", "available", "submit", "ping"
	ID   string          `json:"id"`   // Client-assigned request ID
	Data json.RawMessage `json:"data,omitempty"`
}

// AddFieldData is the payload for "add_field" messages.
type AddFieldData struct {
	Kind    string `json:"kind"`
	Subtype string `json:"subtype,omitempty"`
	Label   string `json:"label"`
}

// RemoveFieldData is the payload for "remove_field" messages.
type RemoveFieldData struct {
	Label string `json:"label"`
}

// SetValueData is the payload for "set_value" messages. Value carries the
// raw JSON shape of the field: string, number, RFC 3339 date string, or
// string array.
type SetValueData struct {
	Label string          `json:"label"`
	Value json.RawMessage `json:"value"`
}

// AvailableData is the payload for "available" messages.
type AvailableData struct {
	Kind string `json:"kind"`
}

// ── Server → Client messages ────────────────────────────────────────────────

// ServerMessage is the envelope for all server-to-client WebSocket messages.
type ServerMessage struct {
	Type      string `json:"type"`                 // "session", "fields", "archetypes", "saved", "error", "pong"
	RequestID string `json:"request_id,omitempty"` // Echoes client ID
	Data      any    `json:"data,omitempty"`
}

// SessionData carries session information sent on connect.
type SessionData struct {
	SessionID string `json:"session_id"`
	OwnerID   int64  `json:"owner_id"`
}

// FieldView is the wire shape of one field instance.
type FieldView struct {
	Label       string `json:"label"`
	Kind        string `json:"kind"`
	Subtype     string `json:"subtype,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required"`
	Value       any    `json:"value"`
	Error       string `json:"error,omitempty"`
}

// FieldsData carries the full schema state after every mutation.
type FieldsData struct {
	Fields      []FieldView `json:"fields"`
	State       string      `json:"state"`
	Submittable bool        `json:"submittable"`
}

// ArchetypeView is the wire shape of one unconsumed catalog entry.
type ArchetypeView struct {
	Kind    string `json:"kind"`
	Subtype string `json:"subtype,omitempty"`
	Label   string `json:"label"`
}

// ArchetypesData answers an "available" request.
type ArchetypesData struct {
	Kind  string          `json:"kind"`
	Items []ArchetypeView `json:"items"`
}

// SavedData confirms a persisted submit or update.
type SavedData struct {
	RecordID int64 `json:"record_id"`
	Updated  bool  `json:"updated"`
}

// ErrorData carries an error message.
type ErrorData struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"` // per-field validation messages
}
