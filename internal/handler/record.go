package handler

import (
	"encoding/json"
	"net/http"

	"github.com/priyankjain/shopform/internal/form"
	"github.com/priyankjain/shopform/internal/profile"
	"github.com/priyankjain/shopform/pkg/fault"
)

// RecordHandler implements HTTP handlers for profile records. The WebSocket
// surface builds schemas interactively; this one accepts a whole schema in a
// single request.
type RecordHandler struct {
	svc *profile.Service
}

func NewRecordHandler(svc *profile.Service) *RecordHandler {
	return &RecordHandler{svc: svc}
}

type recordField struct {
	Kind    string          `json:"kind"`
	Subtype string          `json:"subtype,omitempty"`
	Label   string          `json:"label"`
	Value   json.RawMessage `json:"value,omitempty"`
}

type createRecordRequest struct {
	OwnerID int64         `json:"owner_id"`
	Fields  []recordField `json:"fields"`
}

type fieldView struct {
	Label       string `json:"label"`
	Kind        string `json:"kind"`
	Subtype     string `json:"subtype,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required"`
	Value       any    `json:"value"`
	Error       string `json:"error,omitempty"`
}

type recordResponse struct {
	ID     int64       `json:"id"`
	Fields []fieldView `json:"fields"`
	State  string      `json:"state"`
}

// buildFromFields replays the field list through a fresh builder.
func buildFromFields(fields []recordField) (*form.Builder, error) {
	b := form.NewBuilder()
	for _, f := range fields {
		kind := form.ParseKind(f.Kind)
		if kind == 0 {
			return nil, fault.NewClientError("unknown field kind: "+f.Kind, nil)
		}
		field, err := b.AddField(kind, f.Subtype, f.Label)
		if err != nil {
			return nil, err
		}
		if len(f.Value) > 0 {
			v, err := form.ParseJSONValue(field.Archetype, f.Value)
			if err != nil {
				return nil, fault.NewClientError(f.Label+": "+err.Error(), nil)
			}
			if err := b.SetValue(f.Label, v); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

func viewsOf(b *form.Builder) []fieldView {
	views := []fieldView{}
	for _, f := range b.Fields() {
		views = append(views, fieldView{
			Label:       f.Label,
			Kind:        f.Archetype.Kind.String(),
			Subtype:     f.Archetype.Subtype,
			Placeholder: f.Archetype.Placeholder,
			Required:    f.Archetype.Validation.Required,
			Value:       f.Value.Raw(),
			Error:       f.Error,
		})
	}
	return views
}

func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if req.OwnerID <= 0 {
		writeError(w, http.StatusBadRequest, "MISSING_OWNER", "owner_id is required")
		return
	}
	if len(req.Fields) == 0 {
		writeError(w, http.StatusBadRequest, "EMPTY_SCHEMA", "at least one field is required")
		return
	}

	b, err := buildFromFields(req.Fields)
	if err != nil {
		faultToHTTP(w, r, err)
		return
	}

	id, err := h.svc.Submit(r.Context(), req.OwnerID, b)
	if err != nil {
		faultToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recordResponse{
		ID:     id,
		Fields: viewsOf(b),
		State:  b.State().String(),
	})
}

func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	b, err := h.svc.LoadForEdit(r.Context(), id)
	if err != nil {
		faultToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordResponse{
		ID:     id,
		Fields: viewsOf(b),
		State:  b.State().String(),
	})
}

// ListByOwner returns raw stored records for an owner, blob included.
func (h *RecordHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := parseID(w, r, "ownerID")
	if !ok {
		return
	}
	records, err := h.svc.ListByOwner(r.Context(), ownerID)
	if err != nil {
		faultToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

type updateRecordRequest struct {
	Values map[string]json.RawMessage `json:"values"`
}

// Update loads the stored record, applies new values to the decoded schema,
// revalidates, and saves. Schema shape is fixed at update time; only values
// change.
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var req updateRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	b, err := h.svc.LoadForEdit(r.Context(), id)
	if err != nil {
		faultToHTTP(w, r, err)
		return
	}

	for label, raw := range req.Values {
		f := b.Field(label)
		if f == nil {
			writeError(w, http.StatusBadRequest, "UNKNOWN_FIELD", "no field with label "+label)
			return
		}
		v, err := form.ParseJSONValue(f.Archetype, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_VALUE", label+": "+err.Error())
			return
		}
		if err := b.SetValue(label, v); err != nil {
			faultToHTTP(w, r, err)
			return
		}
	}

	if err := h.svc.Update(r.Context(), id, b); err != nil {
		faultToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordResponse{
		ID:     id,
		Fields: viewsOf(b),
		State:  b.State().String(),
	})
}
