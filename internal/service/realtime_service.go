package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-interview-be/internal/config"
	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/pkg/serverutils"
	"github.com/gofiber/fiber/v2"
)

const realtimeSecretsURL = "https://api.openai.com/v1/realtime/client_secrets"

// IRealtimeService mints ephemeral client secrets so the browser can open a
// voice connection straight to the realtime API without ever seeing the
// server key.
type IRealtimeService interface {
	CreateSessionToken(ctx context.Context) (*dto.RealtimeSessionTokenResponse, error)
}

type realtimeService struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     logger.ILogger
}

func NewRealtimeService(cfg *config.Config, log logger.ILogger) IRealtimeService {
	return &realtimeService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.Ai.RealtimeTimeoutMs) * time.Millisecond},
		logger:     log,
	}
}

func (s *realtimeService) CreateSessionToken(ctx context.Context) (*dto.RealtimeSessionTokenResponse, error) {
	apiKey := s.cfg.Keys.OpenAI
	if apiKey == "" {
		return nil, serverutils.NewApiError(fiber.StatusInternalServerError, "OPENAI_API_KEY is not configured")
	}

	payload := map[string]interface{}{
		"session": map[string]interface{}{
			"type":  "realtime",
			"model": s.cfg.Ai.RealtimeModel,
			"audio": map[string]interface{}{
				"output": map[string]interface{}{"voice": "alloy"},
			},
			"instructions": constant.RealtimeInstructions,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, realtimeSecretsURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("RealtimeService", "Failed to contact realtime API", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.NewApiError(fiber.StatusBadGateway, "Failed to contact OpenAI Realtime API")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, serverutils.NewApiError(fiber.StatusBadGateway, "Failed to read realtime API response")
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("RealtimeService", "Realtime API error", map[string]interface{}{
			"status": resp.StatusCode, "body": string(raw),
		})
		return nil, serverutils.NewApiError(resp.StatusCode, fmt.Sprintf("OpenAI Realtime API error: %s", string(raw)))
	}

	var data struct {
		Value     string      `json:"value"`
		ExpiresAt interface{} `json:"expires_at"`
		Session   struct {
			Id string `json:"id"`
		} `json:"session"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, serverutils.NewApiError(fiber.StatusBadGateway, "Malformed realtime API response")
	}

	expiresAt := ""
	if data.ExpiresAt != nil {
		expiresAt = fmt.Sprintf("%v", data.ExpiresAt)
	}

	return &dto.RealtimeSessionTokenResponse{
		ClientSecret: data.Value,
		SessionId:    data.Session.Id,
		ExpiresAt:    expiresAt,
	}, nil
}
