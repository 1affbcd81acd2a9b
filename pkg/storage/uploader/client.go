// Package uploader proxies image uploads to the external media service.
//
// The media service exposes a multipart upload endpoint authenticated with an
// API key over HTTP basic auth and responds with the hosted file URL. The API
// key never reaches browsers; admin clients upload through this proxy.
package uploader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/bmimportados/backoffice-backend/pkg/config"
	"github.com/bmimportados/backoffice-backend/pkg/logger"
)

const defaultTimeout = 30 * time.Second

// Client talks to the media service upload endpoint.
type Client struct {
	httpClient *http.Client
	uploadURL  string
	apiKey     string
	folder     string
	maxBytes   int64
}

// Result is the subset of the upload response the API exposes.
type Result struct {
	URL    string `json:"url"`
	FileID string `json:"fileId"`
}

func closeBody(ctx context.Context, logg *logger.Logger, body io.Closer, msg string) {
	if body == nil {
		return
	}
	if err := body.Close(); err != nil && logg != nil {
		logg.Warn(ctx, msg)
	}
}

// NewClient validates the storage configuration and builds an upload client.
func NewClient(cfg config.StorageConfig) (*Client, error) {
	if cfg.UploadURL == "" {
		return nil, errors.New("storage upload url is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("storage api key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		uploadURL:  cfg.UploadURL,
		apiKey:     cfg.APIKey,
		folder:     cfg.Folder,
		maxBytes:   int64(cfg.MaxUploadMB) << 20,
	}, nil
}

// MaxBytes reports the configured upload size cap in bytes.
func (c *Client) MaxBytes() int64 {
	return c.maxBytes
}

// Upload streams the file to the media service and returns the hosted URL.
func (c *Client) Upload(ctx context.Context, fileName string, file io.Reader) (*Result, error) {
	if fileName == "" {
		return nil, errors.New("file name is required")
	}

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		part, err := form.CreateFormFile("file", fileName)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := form.WriteField("fileName", fileName); err != nil {
			pw.CloseWithError(err)
			return
		}
		if c.folder != "" {
			if err := form.WriteField("folder", c.folder); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(form.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media service request failed: %w", err)
	}
	defer func() { closeBody(ctx, nil, resp.Body, "uploader: closing response body failed") }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if len(b) > 0 {
			return nil, fmt.Errorf("media service upload failed: %s: %s", resp.Status, strings.TrimSpace(string(b)))
		}
		return nil, fmt.Errorf("media service upload failed: %s", resp.Status)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}
	if result.URL == "" {
		return nil, errors.New("media service response missing url")
	}
	return &result, nil
}
