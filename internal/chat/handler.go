package chat

import (
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/logger"
	"github.com/julianstephens/learnnova/internal/models"
)

const (
	ChatPath   = "/api/chat"
	HealthPath = "/healthz"

	maxBodyBytes = 1 << 20
)

type ctxKey string

const requestIDKey ctxKey = "request-id"

// NewRouter exposes svc over HTTP.
func NewRouter(svc *Service) http.Handler {
	r := chi.NewMux()
	r.Use(requestIDMiddleware, loggingMiddleware)
	r.Get(HealthPath, healthHandler(svc))
	r.Post(ChatPath, chatHandler(svc))
	return r
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, reqID)))
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		reqID, _ := r.Context().Value(requestIDKey).(string)
		logger.Request(reqID).Info("Handled request", "method", r.Method, "path", r.URL.Path, "latency", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Failed to write response", "error", err)
	}
}

type healthResponse struct {
	Status    string `json:"status"`
	Available bool   `json:"available"`
	Version   string `json:"version"`
}

func healthHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Available: svc.Available(), Version: constants.Version})
	}
}

// chatHandler always answers 200 with a content field. A body that cannot
// be decoded gets the same fallback as an upstream failure.
func chatHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		if !svc.Available() {
			writeJSON(w, http.StatusOK, models.ChatResponse{Content: constants.ChatFallbackUnavailable})
			return
		}

		var req models.ChatRequest
		if err := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			reqID, _ := r.Context().Value(requestIDKey).(string)
			logger.Warn("Invalid chat request body", "request_id", reqID, "error", err)
			writeJSON(w, http.StatusOK, models.ChatResponse{Content: constants.ChatFallbackFailed})
			return
		}

		writeJSON(w, http.StatusOK, svc.Reply(r.Context(), req.Messages))
	}
}
