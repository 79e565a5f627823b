// Copyright 2026 The wif authors.
// SPDX-License-Identifier: Apache-2.0

// This command starts an HTTP server that serves IIIF Image API 3.0
// derivatives of images under a configured directory.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/vetler/wif"
	"github.com/vetler/wif/config"
)

var (
	configPath = flag.String("config", "./config.json", "path to the JSON configuration file")
	addr       = flag.String("addr", "", "TCP address to listen on, overriding the configured ip/port")
	timeout    = flag.Duration("timeout", 0, "time limit for requests served by this server")
)

func main() {
	flag.Parse()

	logger := log.New(os.Stderr, "wif: ", log.LstdFlags)

	cfg := config.Load(*configPath)

	srv := wif.NewServer(cfg, logger)
	srv.Timeout = *timeout

	listenAddr := cfg.Addr()
	if *addr != "" {
		listenAddr = *addr
	}

	httpServer := &http.Server{
		Addr:              listenAddr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Printf("wif listening on %s (image root %s)", listenAddr, cfg.ImagePath)

	var err error
	if cfg.SSL.Enabled {
		err = httpServer.ListenAndServeTLS(cfg.SSL.Cert, cfg.SSL.Key)
	} else {
		err = httpServer.ListenAndServe()
	}
	if err != nil {
		logger.Fatal(err)
	}
}
