package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/till/internal/export"
	"github.com/MrJamesThe3rd/till/internal/http/auth"
	"github.com/MrJamesThe3rd/till/internal/ledger"
)

type Handler struct {
	svc    *ledger.Service
	export *export.Service
	loc    *time.Location
	now    func() time.Time
}

// NewHandler creates a till Handler. loc is the time zone used when a request
// does not name one.
func NewHandler(svc *ledger.Service, exportSvc *export.Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}

	return &Handler{svc: svc, export: exportSvc, loc: loc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/snapshot", h.snapshot)
	r.Get("/movements", h.movements)
	r.Get("/export", h.exportCSV)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/open", h.open)
		r.Post("/close", h.close)
	})
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := restaurantFromURL(w, r)
	if !ok {
		return
	}

	dr, err := h.rangeFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := h.svc.Snapshot(r.Context(), restaurantID, dr)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSnapshotResponse(dr, snap))
}

func (h *Handler) movements(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := restaurantFromURL(w, r)
	if !ok {
		return
	}

	dr, err := h.rangeFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ms, err := h.svc.Movements(r.Context(), restaurantID, dr)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMovementResponseList(ms))
}

type openRequest struct {
	Amount amount `json:"amount"`
}

func (h *Handler) open(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := restaurantFromURL(w, r)
	if !ok {
		return
	}

	var req openRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	m, err := h.svc.OpenTill(r.Context(), restaurantID, int64(req.Amount))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMovementResponse(m))
}

type closeRequest struct {
	CountedCash amount `json:"counted_cash"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Timezone    string `json:"tz"`
}

func (h *Handler) close(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := restaurantFromURL(w, r)
	if !ok {
		return
	}

	var req closeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	dr, err := h.parseRange(req.Start, req.End, req.Timezone)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, err := h.svc.CloseTill(r.Context(), restaurantID, int64(req.CountedCash), dr)
	if err != nil {
		writeError(w, err)
		return
	}

	if out.Adjustment != nil {
		slog.Info("registered till surplus",
			"restaurant_id", restaurantID,
			"amount", out.Result.AmountToRegister,
			"movement_id", out.Adjustment.ID,
			"subject", subject(r))
	}

	writeJSON(w, http.StatusOK, toCloseResponse(dr, out))
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := restaurantFromURL(w, r)
	if !ok {
		return
	}

	dr, err := h.rangeFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts, err := exportOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if _, err := h.export.Export(r.Context(), restaurantID, dr, &buf, opts); err != nil {
		writeError(w, err)
		return
	}

	charset := opts.Charset
	if charset == export.CharsetUTF8BOM {
		charset = export.CharsetUTF8
	}

	w.Header().Set("Content-Type", "text/csv; charset="+string(charset))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(dr)))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func restaurantFromURL(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, auth.TenantParam))
	if err != nil {
		http.Error(w, "invalid restaurant id", http.StatusBadRequest)
		return uuid.Nil, false
	}

	return id, true
}

// subject is the verified token subject of r, empty when auth is disabled.
func subject(r *http.Request) string {
	if c, ok := auth.FromContext(r.Context()); ok {
		return c.Subject
	}

	return ""
}

var errBadRequest = errors.New("bad request")

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidRange),
		errors.Is(err, errBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ledger.ErrAppendFailed):
		slog.Error("failed to append movement", "error", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
