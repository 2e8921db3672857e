package handler

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/vidmeta/internal/delivery/http/request"
	"github.com/user/vidmeta/internal/delivery/http/response"
	"github.com/user/vidmeta/internal/entity"
	"github.com/user/vidmeta/internal/repository"
	"github.com/user/vidmeta/internal/usecase"
)

const sessionCookieName = "vidmeta_session"

type Handler struct {
	metadataRepo repository.MetadataRepository
	sessionRepo  repository.SessionRepository
	sessionTTL   time.Duration
	logger       *zap.Logger
	page         *template.Template
}

func NewHandler(metadataRepo repository.MetadataRepository, sessionRepo repository.SessionRepository, sessionTTL time.Duration, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		metadataRepo: metadataRepo,
		sessionRepo:  sessionRepo,
		sessionTTL:   sessionTTL,
		logger:       logger,
		page:         template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// HandleForm renders the form with the session's current state.
func (h *Handler) HandleForm(w http.ResponseWriter, r *http.Request) {
	id := h.sessionID(w, r)
	state, err := h.loadState(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to load session", zap.String("session", id), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.render(w, state)
}

// HandleFormSubmit runs one submission cycle for the posted form. A
// platform button runs SelectPlatform, the Submit button runs Submit.
//
// The cycle claims its sequence number from the session store first, and
// every write is conditional on it, so when posts overlap on one session
// the newest one wins.
func (h *Handler) HandleFormSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	id := h.sessionID(w, r)
	ctx := r.Context()
	logger := h.logger.With(zap.String("session", id))
	state, err := h.loadState(ctx, id)
	if err != nil {
		logger.Error("failed to load session", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	seq, err := h.sessionRepo.Claim(ctx, id, h.sessionTTL)
	if err != nil {
		logger.Error("failed to claim session cycle", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	// Submit bumps Seq, landing on the claimed number.
	state.Seq = seq - 1

	controller := usecase.NewSubmissionController(h.metadataRepo, logger, usecase.WithInitialState(state))
	unsubscribe := controller.Subscribe(func(s entity.SubmissionState) {
		if !s.Loading {
			return
		}
		if _, err := h.sessionRepo.SaveIfLatest(ctx, id, s, h.sessionTTL); err != nil {
			logger.Warn("failed to save loading state", zap.Error(err))
		}
	})
	controller.SetURL(r.PostForm.Get("url"))
	if _, ok := r.PostForm["platform"]; ok {
		state = controller.SelectPlatform(ctx, entity.ParsePlatform(r.PostForm.Get("platform")))
	} else {
		state = controller.Submit(ctx)
	}
	unsubscribe()

	saved, err := h.sessionRepo.SaveIfLatest(ctx, id, state, h.sessionTTL)
	if err != nil {
		// The cycle already ran; show its outcome even if it cannot be kept.
		logger.Error("failed to save session", zap.Error(err))
		h.render(w, state)
		return
	}
	if !saved {
		logger.Info("newer submission started, dropping result", zap.Uint64("seq", state.Seq))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleSubmit runs one stateless submission cycle for a JSON request.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	controller := usecase.NewSubmissionController(h.metadataRepo, h.logger)
	controller.SetURL(req.URL)
	var state entity.SubmissionState
	if req.Platform != "" {
		state = controller.SelectPlatform(r.Context(), entity.ParsePlatform(req.Platform))
	} else {
		state = controller.Submit(r.Context())
	}

	status := http.StatusOK
	switch {
	case state.ValidationFailed():
		status = http.StatusUnprocessableEntity
	case state.HasError():
		status = http.StatusBadGateway
	}
	h.writeJSON(w, status, response.FromState(state))
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sessionID returns the caller's session id, issuing a new cookie when the
// request has none or an unusable one.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *Handler) loadState(ctx context.Context, id string) (entity.SubmissionState, error) {
	state, ok, err := h.sessionRepo.Load(ctx, id)
	if err != nil {
		return entity.SubmissionState{}, err
	}
	if !ok {
		return entity.SubmissionState{Phase: entity.PhaseIdle}, nil
	}
	return state, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
