package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ferg-cod3s/opencode-nexus/internal/buildinfo"
	"github.com/ferg-cod3s/opencode-nexus/internal/chat"
	"github.com/ferg-cod3s/opencode-nexus/internal/session"
	"github.com/ferg-cod3s/opencode-nexus/pkg/types"
	"github.com/ferg-cod3s/opencode-nexus/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	log      *slog.Logger
	chat     *chat.Controller
	sessions session.Store
}

func NewHandlers(log *slog.Logger, chatCtrl *chat.Controller, store session.Store) *Handlers {
	return &Handlers{
		log:      log,
		chat:     chatCtrl,
		sessions: store,
	}
}

// AppInfo GET /app — static server metadata.
func (h *Handlers) AppInfo(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{
		"name":    "OpenCode Mock Server",
		"version": buildinfo.Version,
		"status":  "running",
	})
}

// Health is a basic liveness endpoint.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateSession POST /session — the body is optional; a missing or empty
// title falls back to the store default.
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	sess := h.sessions.Create(req.Title)
	h.log.Info("session created", "id", sess.ID, "title", sess.Title)
	utils.JSON(w, http.StatusOK, sess)
}

// Prompt POST /session/{id}/prompt — appends the user message and streams
// the assistant reply as server-sent events, one fragment per word.
func (h *Handlers) Prompt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Parts []types.Part `json:"parts"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	frags, err := h.chat.Prompt(r.Context(), id, req.Parts)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			utils.Error(w, http.StatusNotFound, "Session not found")
		case errors.Is(err, chat.ErrInvalidInput):
			utils.Error(w, http.StatusBadRequest, "Invalid request format")
		default:
			utils.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.Error(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for frag := range frags {
		data, err := json.Marshal(frag)
		if err != nil {
			h.log.Error("marshal fragment", "err", err.Error())
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}
}

// GetMessages GET /session/{id}/messages — full ordered history.
func (h *Handlers) GetMessages(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	msgs, err := h.sessions.Messages(id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "Session not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if msgs == nil {
		msgs = []types.Message{}
	}
	utils.JSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

// ListSessions GET /sessions — metadata for every known session.
func (h *Handlers) ListSessions(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]any{"sessions": h.sessions.List()})
}
