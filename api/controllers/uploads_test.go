package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bmimportados/backoffice-backend/pkg/config"
	"github.com/bmimportados/backoffice-backend/pkg/storage/uploader"
)

func multipartBody(t *testing.T, field, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile(field, fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := form.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}
	return &buf, form.FormDataContentType()
}

func newUploadClient(t *testing.T, serverURL string, maxMB int) *uploader.Client {
	t.Helper()
	client, err := uploader.NewClient(config.StorageConfig{
		UploadURL:   serverURL,
		APIKey:      "key",
		Folder:      "bm/products",
		MaxUploadMB: maxMB,
		Timeout:     5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestUploadProxiesAndReturnsURL(t *testing.T) {
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"https://cdn.example.com/bm/products/motor.jpg","fileId":"f-1"}`))
	}))
	defer media.Close()

	handler := Upload(newUploadClient(t, media.URL, 10), nil)

	body, contentType := multipartBody(t, "file", "motor.jpg", []byte("jpegdata"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "https://cdn.example.com/bm/products/motor.jpg") {
		t.Fatalf("url missing from response: %s", rec.Body.String())
	}
}

func TestUploadRequiresFileField(t *testing.T) {
	handler := Upload(newUploadClient(t, "http://localhost:1", 10), nil)

	body, contentType := multipartBody(t, "wrong", "motor.jpg", []byte("jpegdata"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUploadRejectsOversizedBody(t *testing.T) {
	handler := Upload(newUploadClient(t, "http://localhost:1", 1), nil)

	body, contentType := multipartBody(t, "file", "huge.bin", bytes.Repeat([]byte("x"), 2<<20))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized upload, got %d", rec.Code)
	}
}

func TestUploadSurfacesMediaServiceFailure(t *testing.T) {
	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer media.Close()

	handler := Upload(newUploadClient(t, media.URL, 10), nil)

	body, contentType := multipartBody(t, "file", "motor.jpg", []byte("jpegdata"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
