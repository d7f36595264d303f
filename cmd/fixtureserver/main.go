package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"searchbox/internal/config"
	"searchbox/internal/devserver"
)

func main() {
	_ = godotenv.Load()

	app := &cli.Command{
		Name:  "fixtureserver",
		Usage: "Serve a JSON corpus over the suggest/search API for local runs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address",
				Value: "127.0.0.1:8787",
			},
			&cli.StringFlag{
				Name:  "corpus",
				Usage: "JSON array of {title, path, article_subtitle}; the built-in sample when empty",
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Require this x-api-key on every request",
				Sources: cli.EnvVars(config.EnvAPIKey),
			},
			&cli.IntFlag{
				Name:  "suggest-limit",
				Usage: "Maximum suggestions per response",
				Value: 5,
			},
			&cli.DurationFlag{
				Name:  "latency",
				Usage: "Artificial delay before every response",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Do not log requests",
			},
		},
		Action: serve,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(ctx context.Context, c *cli.Command) error {
	docs := devserver.SampleCorpus()
	if path := c.String("corpus"); path != "" {
		var err error
		if docs, err = devserver.LoadCorpus(path); err != nil {
			return err
		}
	}

	srv := devserver.New(docs, devserver.Options{
		APIKey:       c.String("api-key"),
		SuggestLimit: c.Int("suggest-limit"),
		Latency:      c.Duration("latency"),
		Logger:       !c.Bool("quiet"),
	})

	httpServer := &http.Server{
		Addr:              c.String("addr"),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Serving %d documents on http://%s", len(docs), httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening on %s: %w", httpServer.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
