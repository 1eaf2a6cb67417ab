package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ferg-cod3s/opencode-nexus/internal/check"
	"github.com/ferg-cod3s/opencode-nexus/internal/logging"
)

// chatcheck runs connectivity and chat-flow checks against a running chat
// server (usually the mock) and exits non-zero if any check fails.
func main() {
	host := flag.String("host", "localhost", "server hostname")
	port := flag.Int("port", 4096, "server port")
	secure := flag.Bool("secure", false, "use HTTPS")
	timeout := flag.Duration("timeout", 30*time.Second, "per-request timeout")
	flag.Parse()

	scheme := "http"
	if *secure {
		scheme = "https"
	}
	baseURL := fmt.Sprintf("%s://%s:%d", scheme, *host, *port)
	fmt.Printf("checking %s\n", baseURL)

	logger := logging.New("error", false, "")
	client := check.NewClient(baseURL, *timeout, logger)
	runner := check.NewRunner(client, os.Stdout)

	if !runner.Run(context.Background()) {
		os.Exit(1)
	}
}
