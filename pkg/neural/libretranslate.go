package neural

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultLibreTranslateURL = "http://localhost:5000"
	translatePath            = "/translate"
	languagesPath            = "/languages"
)

// LibreTranslate talks to a self-hosted LibreTranslate server.
type LibreTranslate struct {
	client  *http.Client
	config  *Config
	baseURL string
	logger  *zap.Logger
}

func NewLibreTranslate(client *http.Client, config *Config, logger *zap.Logger) *LibreTranslate {
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultLibreTranslateURL
	}
	return &LibreTranslate{
		client:  client,
		config:  config,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger.With(zap.String("engine", string(EngineLibreTranslate))),
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

func (c *LibreTranslate) Translate(ctx context.Context, text string) (string, error) {
	body := new(bytes.Buffer)
	if err := json.NewEncoder(body).Encode(&translateRequest{
		Q:      text,
		Source: c.config.SourceLang,
		Target: c.config.TargetLang,
		Format: "text",
		APIKey: c.config.APIKey,
	}); err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+translatePath, body)
	if err != nil {
		return "", fmt.Errorf("can not form request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	start := time.Now()
	response, err := c.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer response.Body.Close()
	c.logger.Debug("translate request completed",
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode != http.StatusOK {
		message, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return "", fmt.Errorf("unexpected response code %d: %s", response.StatusCode, bytes.TrimSpace(message))
	}
	var decoded translateResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if strings.TrimSpace(decoded.TranslatedText) == "" {
		return "", ErrEmptyTranslation
	}
	return decoded.TranslatedText, nil
}

// CheckHealth uses the languages endpoint as a readiness probe.
func (c *LibreTranslate) CheckHealth(ctx context.Context) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+languagesPath, nil)
	if err != nil {
		return fmt.Errorf("can not form request: %w", err)
	}
	response, err := c.client.Do(request)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected response code: %d", response.StatusCode)
	}
	return nil
}

func (c *LibreTranslate) Close(ctx context.Context) error {
	c.client.CloseIdleConnections()
	return nil
}
