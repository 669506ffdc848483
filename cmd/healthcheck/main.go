// Package main provides a container health probe that checks the liveness
// endpoint and exits non-zero on failure.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/smartcampus/campusai-go/internal/config"
)

func main() {
	port := os.Getenv(config.EnvPort)
	if port == "" {
		port = "8000"
	}

	client := &http.Client{Timeout: 8 * time.Second}
	url := fmt.Sprintf("http://localhost:%s/healthz", port)

	resp, err := client.Get(url)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}
