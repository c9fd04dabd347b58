// Command player connects to a dealer and plays one game with the silly
// strategy or a Lua script.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	engine "github.com/nixpulvis/hell/engine"
	"github.com/nixpulvis/hell/engine/agent"
	"github.com/nixpulvis/hell/service/internal/config"
	"github.com/nixpulvis/hell/service/internal/remote"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadPlayer()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := cfg.Log.Logger()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("Player failed.")
	}
}

func run(ctx context.Context, cfg config.Player, logger *logrus.Logger) error {
	chooser, cleanup, err := strategy(cfg.Strategy)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := remote.Dial(ctx, cfg.URL, cfg.Info, chooser, logger)
	if err != nil {
		return err
	}
	logger.WithField("url", cfg.URL).Info("Signed up.")

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		return client.Play(ctx)
	})
	g.Go(func() error {
		select {
		case <-done:
		case <-ctx.Done():
			_ = client.Close()
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Game over.")
	return nil
}

// strategy returns the chooser named by s: "silly", or the path of a Lua
// script defining choose_feed.
func strategy(s string) (engine.Chooser, func(), error) {
	if s == "" || s == "silly" {
		return agent.Silly{}, func() {}, nil
	}
	script, err := os.ReadFile(s)
	if err != nil {
		return nil, nil, fmt.Errorf("read strategy: %w", err)
	}
	lc, err := agent.NewLuaChooser(string(script))
	if err != nil {
		return nil, nil, err
	}
	return lc, lc.Close, nil
}
