// Package main runs the local development server: the identity provider and
// remote task store the taskdeck CLI talks to.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"taskdeck/internal/devserver"
	"taskdeck/internal/logging"
)

func main() {
	addr := flag.String("addr", "localhost:8787", "listen address")
	dbPath := flag.String("db", "taskdeckd.sqlite", "sqlite database path")
	flag.Parse()

	log := logging.New("devserver", os.Getenv("LOG_LEVEL") == "debug")

	secret := []byte(os.Getenv("TASKDECKD_SECRET"))
	if len(secret) == 0 {
		// Development default. Tokens do not survive a restart with a
		// changed secret, which is acceptable here.
		secret = []byte("taskdeckd-dev-secret")
	}

	srv, err := devserver.New(*dbPath, secret, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer srv.Close()

	log.WithField("addr", *addr).Info("listening")
	if err := http.ListenAndServe(*addr, srv.Handler()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
