// Package deepl is a minimal client for the DeepL v2 translate endpoint.
// Each call carries exactly one text item; batching is the caller's
// problem and the relay never needs it.
package deepl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultAPIBase = "https://api.deepl.com"

// Client calls the DeepL translate API.
type Client struct {
	apiKey  string
	apiBase string
	client  *http.Client
	tracer  trace.Tracer
}

// New creates a Client. apiBase may be empty to use the public endpoint.
func New(apiKey, apiBase string) *Client {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	apiBase = strings.TrimRight(apiBase, "/")

	return &Client{
		apiKey:  apiKey,
		apiBase: apiBase,
		client:  &http.Client{Timeout: 30 * time.Second},
		tracer:  otel.Tracer("lingorelay/deepl"),
	}
}

// Translation is one translated text together with the language DeepL
// detected the input as written in.
type Translation struct {
	Text                   string `json:"text"`
	DetectedSourceLanguage string `json:"detected_source_language"`
}

type translateRequest struct {
	Text       []string `json:"text"`
	TargetLang string   `json:"target_lang"`
}

type translateResponse struct {
	Translations []Translation `json:"translations"`
}

// HTTPError is a non-2xx response from the DeepL API. The status code
// is for logs only and must not be surfaced to chat users.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("deepl: server error: status %d: %s", e.Status, e.Body)
}

// Translate sends a single text for translation into targetLang.
// The response may carry any number of translations; interpreting the
// count is up to the caller. No retries — a failure is terminal here.
func (c *Client) Translate(ctx context.Context, text, targetLang string) ([]Translation, error) {
	// Span carries the target language only — never message text or credential.
	ctx, span := c.tracer.Start(ctx, "deepl.translate",
		trace.WithAttributes(attribute.String("deepl.target_lang", targetLang)))
	defer span.End()

	data, err := json.Marshal(translateRequest{
		Text:       []string{text},
		TargetLang: targetLang,
	})
	if err != nil {
		return nil, fmt.Errorf("deepl: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/v2/translate", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("deepl: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("deepl: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		herr := &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		span.RecordError(herr)
		return nil, herr
	}

	var tr translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("deepl: decode response: %w", err)
	}

	return tr.Translations, nil
}
