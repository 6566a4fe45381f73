// Package imgbb uploads product images to the imgbb hosting API.
package imgbb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/mgluxury/boutique/internal/core/domain"
)

const DefaultEndpoint = "https://api.imgbb.com/1/upload"

// Client implements ports.ImageUploader.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewClient(endpoint, apiKey string, httpClient *http.Client) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{endpoint: endpoint, apiKey: apiKey, http: httpClient}
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload posts the image as multipart form data and returns its hosted URL.
// Rejections by the host are reported as *domain.UploadError.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if c.apiKey == "" {
		return "", &domain.UploadError{Reason: "image host API key is not configured"}
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("key", c.apiKey); err != nil {
		return "", fmt.Errorf("imgbb form: %w", err)
	}
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("imgbb form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("imgbb form: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("imgbb form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("imgbb request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("imgbb upload: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("imgbb read: %w", err)
	}
	var out uploadResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &domain.UploadError{Reason: fmt.Sprintf("unexpected response (HTTP %d)", resp.StatusCode)}
	}
	if !out.Success || out.Data.URL == "" {
		reason := out.Error.Message
		if reason == "" {
			reason = fmt.Sprintf("upload rejected (HTTP %d)", resp.StatusCode)
		}
		return "", &domain.UploadError{Reason: reason}
	}
	return out.Data.URL, nil
}
