package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jalnangage/marketing-agent/internal/llm"
	"github.com/jalnangage/marketing-agent/internal/strategy"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("Error encoding JSON response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondErrorCode adds a machine-readable code the frontend switches on.
func respondErrorCode(w http.ResponseWriter, status int, message, code string) {
	respondJSON(w, status, map[string]string{"error": message, "code": code})
}

// Health Check

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	status := map[string]interface{}{
		"status": "healthy",
		"gcal":   "disconnected",
		"email":  "disabled",
	}

	if s.gcalClient != nil && s.gcalClient.IsAuthenticated() {
		status["gcal"] = "connected"
	}

	if s.notifyService != nil && s.notifyService.IsEmailAvailable() {
		status["email"] = "configured"
	}

	respondJSON(w, http.StatusOK, status)
}

// Chat API

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string        `json:"message"`
		History []llm.Message `json:"history"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := s.generator.Chat(r.Context(), req.Message, req.History)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("chat completion failed: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// Strategy Generation API

func (s *Server) handleGenerateStrategies(w http.ResponseWriter, r *http.Request) {
	var req struct {
		History []llm.Message `json:"history"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	start := time.Now()

	rawContent, err := s.generator.GenerateStrategyText(r.Context(), req.History)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("strategy generation failed: %v", err))
		return
	}

	now := time.Now().In(s.location)
	strategies := strategy.Parse(rawContent, now)

	usedFallback := false
	if len(strategies) == 0 {
		strategies = strategy.FallbackStrategies(now)
		usedFallback = true
	}

	processing := time.Since(start)

	generationID, err := s.db.RecordGeneration(rawContent, len(strategies), usedFallback, processing)
	if err != nil {
		fmt.Printf("Failed to record strategy generation: %v\n", err)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"strategies":   strategies,
		"rawContent":   rawContent,
		"usedFallback": usedFallback,
		"processingMs": processing.Milliseconds(),
		"generationId": generationID,
	})
}
