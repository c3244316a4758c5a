package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"dashchat/pkg/ai"
	"dashchat/pkg/api"
	"dashchat/pkg/assist"
	"dashchat/pkg/credential"
)

const invalidKeyMessage = "Invalid API key"

// handleChat answers a single dashboard question. The model output is
// run through the normalizer so clients usually receive a structured
// card or guide instead of raw reply text.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	if err := credential.Check(strings.TrimSpace(req.APIKey)); err != nil {
		slog.Debug("chat_key_rejected", "request_id", RequestID(r.Context()), "reason", err)
		writeError(w, http.StatusUnauthorized, invalidKeyMessage)
		return
	}

	chatReq := ai.ChatRequest{
		APIKey:   req.APIKey,
		Model:    s.cfg.Server.Model,
		Messages: ai.BuildMessages(req.Message, req.PageDOM, req.Intent),
	}

	resp, err := s.provider.CreateChatCompletion(r.Context(), chatReq)
	if err != nil {
		if errors.Is(err, ai.ErrAuth) {
			slog.Info("chat_upstream_auth_failed", "request_id", RequestID(r.Context()))
			writeError(w, http.StatusUnauthorized, invalidKeyMessage)
			return
		}
		slog.Error("chat_completion_failed", "request_id", RequestID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, "completion failed")
		return
	}

	normalized := assist.Normalize(resp.Content)

	writeJSON(w, http.StatusOK, api.ChatResponse{
		Success: true,
		Reply:   normalized.Text,
		Card:    normalized.Card,
		Guide:   normalized.Guide,
	})
}
