// Copyright 2026 The wif authors.
// SPDX-License-Identifier: Apache-2.0

package wif

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/vetler/wif/config"
)

// Server dispatches the IIIF routes against a single Registry and a
// process-wide Config: special-case routes handled before the general
// derivative handler, request duration and status recorded for every
// /iiif/ request (the special-case routes are not measured), CORS set on
// every response.
type Server struct {
	Registry *Registry
	Config   config.Config
	Logger   *log.Logger

	// Timeout bounds how long a single /iiif/ request may run before the
	// client gets a 503 Service Unavailable. A Timeout of zero means no
	// timeout.
	Timeout time.Duration
}

// NewServer constructs a Server rooted at the given image directory.
func NewServer(cfg config.Config, logger *log.Logger) *Server {
	return &Server{
		Registry: NewRegistry(cfg.ImagePath),
		Config:   cfg,
		Logger:   logger,
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	switch {
	case r.URL.Path == "/":
		fmt.Fprint(w, "Welcome to wif!")
		return
	case r.URL.Path == "/favicon.ico":
		http.ServeFile(w, r, "favicon.ico")
		return
	case r.URL.Path == "/health":
		fmt.Fprint(w, "OK")
		return
	case r.URL.Path == "/metrics":
		promhttp.Handler().ServeHTTP(w, r)
		return
	}

	var h http.Handler = http.HandlerFunc(s.serveIIIF)
	if s.Timeout > 0 {
		h = http.TimeoutHandler(h, s.Timeout, "Gateway timeout waiting for the transform pipeline.")
	}

	route := s.routeLabel(r.URL.Path)
	start := time.Now()
	metricRequestsInFlight.Inc()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	defer func() {
		metricRequestDuration.WithLabelValues(route, strconv.Itoa(rec.status)).Observe(time.Since(start).Seconds())
		metricRequestsInFlight.Dec()
	}()

	h.ServeHTTP(rec, r)
}

// statusRecorder wraps a ResponseWriter to capture the status code
// actually written, since http.ResponseWriter exposes no way to read it
// back afterwards.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) routeLabel(path string) string {
	if strings.HasSuffix(path, "/info.json") {
		return "info"
	}
	return "derivative"
}

// serveIIIF dispatches the /iiif/* routes: base-URI redirect, info.json,
// or a derivative request.
func (s *Server) serveIIIF(w http.ResponseWriter, r *http.Request) {
	rest, ok := strings.CutPrefix(r.URL.Path, "/iiif/")
	if !ok || rest == "" {
		s.writeError(w, notFound("server", "no such route"))
		return
	}
	parts := strings.Split(rest, "/")

	switch len(parts) {
	case 1:
		s.handleRedirect(w, r, parts[0])
	case 2:
		if parts[1] != "info.json" {
			s.writeError(w, notFound("server", "no such route"))
			return
		}
		s.handleInfo(w, r, parts[0])
	case 5:
		s.handleDerivative(w, r, parts[0], parts[1], parts[2], parts[3], parts[4])
	default:
		s.writeError(w, notFound("server", "no such route"))
	}
}

// handleRedirect implements GET /iiif/{id} -> 301 Location: info.json.
func (s *Server) handleRedirect(w http.ResponseWriter, r *http.Request, identifier string) {
	w.Header().Set("Location", "/iiif/"+identifier+"/info.json")
	w.WriteHeader(http.StatusMovedPermanently)
}

// handleInfo implements GET /iiif/{id}/info.json.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request, identifier string) {
	view, err := s.Registry.Resolve(identifier)
	if err != nil {
		s.writeError(w, err)
		return
	}

	info := NewInfo(s.Config.BaseAddress, view, s.Config.MaxArea)

	w.Header().Set("Content-Type", "application/ld+json")
	if err := writeJSON(w, info); err != nil {
		s.logf("error writing info.json for %q: %v", identifier, err)
	}
}

// handleDerivative implements GET
// /iiif/{id}/{region}/{size}/{rotation}/{quality.format}: parse, try
// the fast paths, otherwise decode/transform/encode.
func (s *Server) handleDerivative(w http.ResponseWriter, r *http.Request, identifier, regionStr, sizeStr, rotationStr, qualityStr string) {
	view, err := s.Registry.Resolve(identifier)
	if err != nil {
		s.writeError(w, err)
		return
	}

	plan, err := ParsePlan(regionStr, sizeStr, rotationStr, qualityStr)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if ok, contentType := IdentityStream(plan, view.Format); ok {
		body, err := OpenIdentityStream(view)
		if err != nil {
			s.writeError(w, err)
			return
		}
		defer body.Close()
		metricFastPathHits.Inc()
		w.Header().Set("Content-Type", contentType)
		if _, err := io.Copy(w, body); err != nil {
			s.logf("error streaming %q: %v", identifier, err)
		}
		return
	}

	if windowed, ok := TryPNGWindowedDecode(view, plan.Region); ok {
		metricPNGWindowHits.Inc()
		buf, contentType, err := TransformWithRegionApplied(windowed, plan, int(s.Config.JPGQuality))
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		if _, err := w.Write(buf); err != nil {
			s.logf("error writing response for %q: %v", identifier, err)
		}
		return
	}

	img, err := s.decode(view)
	if err != nil {
		s.writeError(w, err)
		return
	}

	buf, contentType, err := Transform(img, plan, int(s.Config.JPGQuality))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(buf); err != nil {
		s.logf("error writing response for %q: %v", identifier, err)
	}
}

// decode fully decodes a source file's pixel buffer. Unlike
// probeDimensions, this reads the entire image — it's only reached once
// both fast paths have declined.
func (s *Server) decode(view *ImageView) (image.Image, error) {
	f, err := os.Open(view.Filepath)
	if err != nil {
		return nil, internalError("decode", "failed to open source file", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, internalError("decode", "failed to decode source image", err)
	}
	return img, nil
}

// writeError maps an Error to its HTTP status and body: internal errors
// never leak the underlying cause to the client, only to the log.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	werr, ok := err.(*Error)
	if !ok {
		werr = &Error{Kind: KindInternal, Op: "server", Message: "unexpected error", Err: err}
	}
	if werr.Kind == KindInternal {
		s.logf("%s: %v", werr.Op, werr)
	}
	metricTransformErrors.WithLabelValues(fmt.Sprint(werr.Status())).Inc()
	http.Error(w, werr.ClientMessage(), werr.Status())
}

func (s *Server) logf(format string, v ...any) {
	if s.Logger != nil {
		s.Logger.Printf(format, v...)
		return
	}
	log.Printf(format, v...)
}
