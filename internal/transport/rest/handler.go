package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/spigell/hirely/internal/interview"
	"github.com/spigell/hirely/internal/reports"
	"github.com/spigell/hirely/internal/session"
)

type Handler struct {
	engine  *interview.Engine
	store   session.Store
	locks   *session.Locks
	archive *reports.Archive
	logger  *zap.Logger
}

func NewHandler(engine *interview.Engine, store session.Store, archive *reports.Archive, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		engine:  engine,
		store:   store,
		locks:   session.NewLocks(),
		archive: archive,
		logger:  logger,
	}
}

type answerRequest struct {
	Text string `json:"text"`
}

type exportResponse struct {
	Path string `json:"path"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.engine.NewSession()
	if err := h.store.Save(r.Context(), s); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.engine.Snapshot(s))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.engine.Snapshot(s))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	unlock := h.locks.Lock(id)
	defer unlock()

	if _, err := h.store.Get(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.engine.StartInterview)
}

func (h *Handler) SubmitProfile(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	profile, err := interview.ProfileFromFields(fields)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.apply(w, r, func(ctx context.Context, s *interview.Session) error {
		return h.engine.SubmitProfile(ctx, s, profile)
	})
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	h.apply(w, r, func(ctx context.Context, s *interview.Session) error {
		return h.engine.SubmitAnswer(ctx, s, req.Text)
	})
}

func (h *Handler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.engine.AcknowledgeBotMessage)
}

func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.engine.AdvancePhase)
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	unlock := h.locks.Lock(id)
	defer unlock()

	ctx := r.Context()
	old, err := h.store.Get(ctx, id)
	if err != nil {
		h.fail(w, err)
		return
	}

	fresh := h.engine.ResetSession(ctx, old)
	if err := h.store.Save(ctx, fresh); err != nil {
		h.fail(w, err)
		return
	}
	if err := h.store.Delete(ctx, id); err != nil {
		h.logger.Warn("failed to delete discarded session", zap.String("session_id", id), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, h.engine.Snapshot(fresh))
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, err)
		return
	}

	path, err := h.archive.Save(s)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exportResponse{Path: path})
}

// apply runs one engine event against the stored session. The session is
// saved only when the event succeeds.
func (h *Handler) apply(w http.ResponseWriter, r *http.Request, event func(context.Context, *interview.Session) error) {
	id := mux.Vars(r)["id"]
	unlock := h.locks.Lock(id)
	defer unlock()

	ctx := r.Context()
	s, err := h.store.Get(ctx, id)
	if err != nil {
		h.fail(w, err)
		return
	}

	if err := event(ctx, s); err != nil {
		h.fail(w, err)
		return
	}

	if err := h.store.Save(ctx, s); err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.engine.Snapshot(s))
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	var (
		validation *interview.ValidationError
		completion *interview.CompletionError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, interview.ErrEmptyAnswer):
		return http.StatusBadRequest
	case errors.Is(err, interview.ErrBotMessagePending),
		errors.Is(err, interview.ErrInvalidTransition),
		errors.Is(err, interview.ErrPhaseIncomplete),
		errors.Is(err, interview.ErrNoActiveQuestion),
		errors.Is(err, reports.ErrNoReport):
		return http.StatusConflict
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &completion):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
