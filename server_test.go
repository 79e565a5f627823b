// Copyright 2026 The wif authors.
// SPDX-License-Identifier: Apache-2.0

package wif

import (
	"bytes"
	"image"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/vetler/wif/config"
)

func newTestServer(t *testing.T, dir string) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.ImagePath = dir
	cfg.BaseAddress = "http://localhost"
	cfg.MaxArea = 1 << 30
	return &Server{Registry: NewRegistry(dir), Config: cfg}
}

// TestDerivativeFastPath verifies that region=full/size=max/rotation=0/
// quality=color against the source's own format streams the file
// byte-for-byte.
func TestDerivativeFastPath(t *testing.T) {
	dir := t.TempDir()
	path := writeTestJPEG(t, dir, "test.jpg", 800, 600)
	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}

	srv := newTestServer(t, dir)
	req := httptest.NewRequest(http.MethodGet, "/iiif/test/full/max/0/default.jpg", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if !bytes.Equal(rec.Body.Bytes(), want) {
		t.Error("fast-path response should be byte-identical to the source file")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q, want image/jpeg", ct)
	}
}

// TestDerivativeSquare verifies that a square region crops to the
// smaller of the two source dimensions.
func TestDerivativeSquare(t *testing.T) {
	dir := t.TempDir()
	writeTestJPEG(t, dir, "test.jpg", 800, 600)

	srv := newTestServer(t, dir)
	req := httptest.NewRequest(http.MethodGet, "/iiif/test/square/max/0/default.jpg", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	img, _, err := image.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if img.Bounds().Dx() != 600 || img.Bounds().Dy() != 600 {
		t.Errorf("got %v, want 600x600", img.Bounds())
	}
}

// TestDerivativeSizeNotAllowed verifies that a non-upscaling size larger
// than the source dimension is rejected with 400.
func TestDerivativeSizeNotAllowed(t *testing.T) {
	dir := t.TempDir()
	writeTestJPEG(t, dir, "test.jpg", 800, 600)

	srv := newTestServer(t, dir)
	req := httptest.NewRequest(http.MethodGet, "/iiif/test/full/2000,/0/default.jpg", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// TestDerivativeMissingIdentifier verifies the 404 body mentions the
// identifier that couldn't be resolved.
func TestDerivativeMissingIdentifier(t *testing.T) {
	dir := t.TempDir()
	srv := newTestServer(t, dir)
	req := httptest.NewRequest(http.MethodGet, "/iiif/missing/full/max/0/default.jpg", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("missing")) {
		t.Errorf("body should mention the missing identifier, got %q", rec.Body.String())
	}
}

// TestRedirect verifies the base-URI redirect to info.json.
func TestRedirect(t *testing.T) {
	dir := t.TempDir()
	writeTestJPEG(t, dir, "test.jpg", 800, 600)
	srv := newTestServer(t, dir)

	req := httptest.NewRequest(http.MethodGet, "/iiif/test", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/iiif/test/info.json" {
		t.Errorf("Location = %q, want /iiif/test/info.json", loc)
	}
}

// TestInfoJSON verifies the info.json response carries the source's
// actual pixel dimensions.
func TestInfoJSON(t *testing.T) {
	dir := t.TempDir()
	writeTestJPEG(t, dir, "test.jpg", 800, 600)
	srv := newTestServer(t, dir)

	req := httptest.NewRequest(http.MethodGet, "/iiif/test/info.json", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/ld+json" {
		t.Errorf("Content-Type = %q, want application/ld+json", ct)
	}
	body := rec.Body.String()
	if !bytes.Contains([]byte(body), []byte(`"width":800`)) {
		t.Errorf("expected width 800 in body, got %s", body)
	}
	if !bytes.Contains([]byte(body), []byte(`"height":600`)) {
		t.Errorf("expected height 600 in body, got %s", body)
	}
}

// TestCORSHeaderOnEveryResponse verifies every response carries
// Access-Control-Allow-Origin: *, including error responses.
func TestCORSHeaderOnEveryResponse(t *testing.T) {
	dir := t.TempDir()
	srv := newTestServer(t, dir)

	req := httptest.NewRequest(http.MethodGet, "/iiif/missing/full/max/0/default.jpg", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
