// Command oauth-init walks through the Google OAuth consent flow once
// and stores the resulting token where the Sheets export expects it
// (GOOGLE_OAUTH_TOKEN_FILE, default token.json). Use it when exporting
// to a personal spreadsheet instead of configuring a service account.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := oauthConfig()
	if err != nil {
		return err
	}

	redirectPort := os.Getenv("OAUTH_REDIRECT_PORT")
	if redirectPort == "" {
		redirectPort = "8085"
	}
	// The OAuth client must list this URI among its authorized
	// redirect URIs.
	cfg.RedirectURL = "http://localhost:" + redirectPort + "/callback"

	codeCh := make(chan string, 1)
	srv := &http.Server{Addr: ":" + redirectPort}
	http.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if errStr := r.URL.Query().Get("error"); errStr != "" {
			http.Error(w, "OAuth error: "+errStr, http.StatusBadRequest)
			return
		}
		code := r.URL.Query().Get("code")
		fmt.Fprintln(w, "Authorization received. You can close this window.")
		codeCh <- code
		go func() { time.Sleep(500 * time.Millisecond); _ = srv.Close() }()
	})
	go func() { _ = srv.ListenAndServe() }()

	fmt.Printf("Open this URL to authorize the Sheets export:\n%s\n",
		cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	select {
	case code := <-codeCh:
		tok, err := cfg.Exchange(context.Background(), code)
		if err != nil {
			return fmt.Errorf("token exchange: %w", err)
		}
		return saveToken(tok)
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("authorization timed out")
	case <-interrupt:
		return fmt.Errorf("interrupted")
	}
}

func oauthConfig() (*oauth2.Config, error) {
	clientJSON := os.Getenv("GOOGLE_OAUTH_CLIENT_JSON")
	clientFile := os.Getenv("GOOGLE_OAUTH_CLIENT_FILE")

	var b []byte
	var err error
	switch {
	case clientJSON != "":
		b = []byte(clientJSON)
	case clientFile != "":
		b, err = os.ReadFile(clientFile)
		if err != nil {
			return nil, fmt.Errorf("read oauth client file: %w", err)
		}
	default:
		return nil, fmt.Errorf("set GOOGLE_OAUTH_CLIENT_JSON or GOOGLE_OAUTH_CLIENT_FILE")
	}

	cfg, err := google.ConfigFromJSON(b, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse oauth client: %w", err)
	}
	return cfg, nil
}

func saveToken(tok *oauth2.Token) error {
	outFile := os.Getenv("GOOGLE_OAUTH_TOKEN_FILE")
	if outFile == "" {
		outFile = "token.json"
	}
	f, err := os.OpenFile(outFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open token file: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	fmt.Printf("Saved token to %s\n", outFile)
	return nil
}
