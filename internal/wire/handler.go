package wire

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/priyankjain/shopform/internal/form"
	"github.com/priyankjain/shopform/internal/profile"
	"github.com/priyankjain/shopform/internal/session"
	"github.com/priyankjain/shopform/pkg/fault"
)

// Handler manages WebSocket connections for interactive schema building.
// Each connection owns one session; messages are handled sequentially, so
// builder access needs no locking.
type Handler struct {
	sessions *session.Manager
	records  *profile.Service
	log      zerolog.Logger
}

// NewHandler creates a WebSocket handler with all dependencies.
func NewHandler(sessions *session.Manager, records *profile.Service, log zerolog.Logger) *Handler {
	return &Handler{sessions: sessions, records: records, log: log}
}

// ServeHTTP upgrades to WebSocket and runs the message loop. The owner is
// identified by the owner_id query parameter; passing record_id opens an
// existing record for editing instead of starting an empty schema.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, err := strconv.ParseInt(r.URL.Query().Get("owner_id"), 10, 64)
	if err != nil || ownerID <= 0 {
		http.Error(w, "owner_id is required", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket accept failed")
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	sess := h.sessions.Create(ownerID)
	defer h.sessions.Remove(sess.ID)

	if raw := r.URL.Query().Get("record_id"); raw != "" {
		recordID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.sendError(ctx, conn, "", "invalid_record_id", "record_id must be an integer", nil)
			return
		}
		b, err := h.records.LoadForEdit(ctx, recordID)
		if err != nil {
			code := "load_failed"
			if errors.Is(err, fault.ErrCorruptRecord) {
				code = "corrupt_record"
			} else if errors.Is(err, fault.ErrNotFound) {
				code = "not_found"
			}
			h.sendError(ctx, conn, "", code, err.Error(), nil)
			return
		}
		sess.Builder = b
		sess.RecordID = recordID
	}

	h.send(ctx, conn, ServerMessage{
		Type: "session",
		Data: SessionData{SessionID: sess.ID, OwnerID: ownerID},
	})
	h.sendFields(ctx, conn, "", sess)

	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) != -1 {
				h.log.Debug().Str("session", sess.ID).Msg("builder connection closed")
			}
			return
		}
		sess.Touch()

		switch msg.Type {
		case "add_field":
			h.handleAddField(ctx, conn, sess, msg)
		case "remove_field":
			h.handleRemoveField(ctx, conn, sess, msg)
		case "set_value":
			h.handleSetValue(ctx, conn, sess, msg)
		case "available":
			h.handleAvailable(ctx, conn, sess, msg)
		case "submit":
			h.handleSubmit(ctx, conn, sess, msg)
		case "ping":
			h.send(ctx, conn, ServerMessage{Type: "pong", RequestID: msg.ID})
		default:
			h.sendError(ctx, conn, msg.ID, "unknown_type", "unknown message type: "+msg.Type, nil)
		}
	}
}

func (h *Handler) handleAddField(ctx context.Context, conn *websocket.Conn, sess *session.Session, msg ClientMessage) {
	var data AddFieldData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "invalid add_field data", nil)
		return
	}
	kind := form.ParseKind(data.Kind)
	if kind == 0 {
		h.sendError(ctx, conn, msg.ID, "invalid_kind", "unknown field kind: "+data.Kind, nil)
		return
	}
	if data.Label == "" {
		h.sendError(ctx, conn, msg.ID, "missing_label", "label is required", nil)
		return
	}

	if _, err := sess.Builder.AddField(kind, data.Subtype, data.Label); err != nil {
		h.sendError(ctx, conn, msg.ID, builderErrorCode(err), err.Error(), nil)
		return
	}
	h.sendFields(ctx, conn, msg.ID, sess)
}

func (h *Handler) handleRemoveField(ctx context.Context, conn *websocket.Conn, sess *session.Session, msg ClientMessage) {
	var data RemoveFieldData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "invalid remove_field data", nil)
		return
	}
	if err := sess.Builder.RemoveField(data.Label); err != nil {
		h.sendError(ctx, conn, msg.ID, builderErrorCode(err), err.Error(), nil)
		return
	}
	h.sendFields(ctx, conn, msg.ID, sess)
}

func (h *Handler) handleSetValue(ctx context.Context, conn *websocket.Conn, sess *session.Session, msg ClientMessage) {
	var data SetValueData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "invalid set_value data", nil)
		return
	}
	f := sess.Builder.Field(data.Label)
	if f == nil {
		h.sendError(ctx, conn, msg.ID, "not_found", "no field with label "+data.Label, nil)
		return
	}
	v, err := form.ParseJSONValue(f.Archetype, data.Value)
	if err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_value", err.Error(), nil)
		return
	}
	if err := sess.Builder.SetValue(data.Label, v); err != nil {
		h.sendError(ctx, conn, msg.ID, builderErrorCode(err), err.Error(), nil)
		return
	}
	h.sendFields(ctx, conn, msg.ID, sess)
}

func (h *Handler) handleAvailable(ctx context.Context, conn *websocket.Conn, sess *session.Session, msg ClientMessage) {
	var data AvailableData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		h.sendError(ctx, conn, msg.ID, "invalid_data", "invalid available data", nil)
		return
	}
	kind := form.ParseKind(data.Kind)
	if kind == 0 {
		h.sendError(ctx, conn, msg.ID, "invalid_kind", "unknown field kind: "+data.Kind, nil)
		return
	}

	items := []ArchetypeView{}
	for _, a := range sess.Builder.Available(kind) {
		items = append(items, ArchetypeView{
			Kind:    a.Kind.String(),
			Subtype: a.Subtype,
			Label:   archetypeDisplayName(a),
		})
	}
	h.send(ctx, conn, ServerMessage{
		Type:      "archetypes",
		RequestID: msg.ID,
		Data:      ArchetypesData{Kind: data.Kind, Items: items},
	})
}

func (h *Handler) handleSubmit(ctx context.Context, conn *websocket.Conn, sess *session.Session, msg ClientMessage) {
	var (
		err     error
		updated bool
	)
	if sess.RecordID == 0 {
		var id int64
		id, err = h.records.Submit(ctx, sess.OwnerID, sess.Builder)
		if err == nil {
			sess.RecordID = id
		}
	} else {
		err = h.records.Update(ctx, sess.RecordID, sess.Builder)
		updated = true
	}

	if err != nil {
		var ve *fault.ValidationError
		if errors.As(err, &ve) {
			h.sendError(ctx, conn, msg.ID, "validation_failed", "one or more fields are invalid", ve.Fields)
			h.sendFields(ctx, conn, msg.ID, sess)
			return
		}
		if errors.Is(err, fault.ErrNotFound) {
			h.sendError(ctx, conn, msg.ID, "not_found", "record no longer exists", nil)
			return
		}
		h.log.Error().Err(err).Str("session", sess.ID).Msg("record save failed")
		h.sendError(ctx, conn, msg.ID, "store_failure", "could not save record", nil)
		return
	}

	h.send(ctx, conn, ServerMessage{
		Type:      "saved",
		RequestID: msg.ID,
		Data:      SavedData{RecordID: sess.RecordID, Updated: updated},
	})
}

func (h *Handler) sendFields(ctx context.Context, conn *websocket.Conn, requestID string, sess *session.Session) {
	views := []FieldView{}
	for _, f := range sess.Builder.Fields() {
		views = append(views, FieldView{
			Label:       f.Label,
			Kind:        f.Archetype.Kind.String(),
			Subtype:     f.Archetype.Subtype,
			Placeholder: f.Archetype.Placeholder,
			Required:    f.Archetype.Validation.Required,
			Value:       f.Value.Raw(),
			Error:       f.Error,
		})
	}
	h.send(ctx, conn, ServerMessage{
		Type:      "fields",
		RequestID: requestID,
		Data: FieldsData{
			Fields:      views,
			State:       sess.Builder.State().String(),
			Submittable: sess.Builder.Submittable(),
		},
	})
}

func (h *Handler) send(ctx context.Context, conn *websocket.Conn, msg ServerMessage) {
	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := wsjson.Write(writeCtx, conn, msg); err != nil {
		h.log.Warn().Err(err).Msg("websocket write failed")
	}
}

func (h *Handler) sendError(ctx context.Context, conn *websocket.Conn, requestID, code, message string, fields map[string]string) {
	h.send(ctx, conn, ServerMessage{
		Type:      "error",
		RequestID: requestID,
		Data:      ErrorData{Code: code, Message: message, Fields: fields},
	})
}

func builderErrorCode(err error) string {
	switch {
	case errors.Is(err, fault.ErrDuplicateLabel):
		return "duplicate_label"
	case errors.Is(err, fault.ErrSubtypeExhausted):
		return "subtype_exhausted"
	case errors.Is(err, fault.ErrDuplicateDatePicker):
		return "duplicate_date_picker"
	case errors.Is(err, fault.ErrNotFound):
		return "not_found"
	default:
		return "builder_error"
	}
}

// archetypeDisplayName renders a catalog entry for pickers.
func archetypeDisplayName(a form.Archetype) string {
	switch a.Subtype {
	case form.SubtypeTextArea:
		return "Text Area"
	case form.SubtypeHeight:
		return "Height"
	case form.SubtypeGender:
		return "Gender"
	case form.SubtypeInterests:
		return "Interests"
	case "":
		if a.Kind == form.DatePicker {
			return "Date Picker"
		}
		return "Text Input"
	default:
		return a.Subtype
	}
}
