package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"wreathworks/internal/config"
	"wreathworks/internal/offline"
)

// syncagent drains a locally stored offline mutation queue against a cart
// API. It is the companion to a UI that queued cart changes while offline.
func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[syncagent] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	queuePath := flag.String("queue", cfg.OfflineQueuePath, "path to the offline queue database")
	baseURL := flag.String("api", cfg.APIBaseURL, "cart API base URL")
	session := flag.String("session", "", "session id to replay as")
	flag.Parse()

	if *session == "" {
		logger.Fatal("session id required (-session)")
	}

	store, err := offline.OpenSQLite(*queuePath)
	if err != nil {
		logger.Fatalf("open queue: %v", err)
	}
	defer func() {
		if closer, ok := store.(io.Closer); ok {
			closer.Close()
		}
	}()

	queue := offline.NewQueue(store, logger)
	dispatcher := offline.NewHTTPDispatcher(*baseURL, *session)
	replayer := offline.NewReplayer(queue, dispatcher, logger)

	report := replayer.Replay(context.Background())
	logger.Printf("replay finished successful=%d failed=%d", report.Successful, report.Failed)
	for _, e := range report.Errors {
		logger.Printf("replay error op=%s type=%s transport=%t permanent=%t message=%s",
			e.OperationID, e.Type, e.Transport, e.Permanent, e.Message)
	}
}
