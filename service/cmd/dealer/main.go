// Command dealer seats websocket players, runs one game and prints the
// scoreboard.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	engine "github.com/nixpulvis/hell/engine"
	"github.com/nixpulvis/hell/service/internal/config"
	"github.com/nixpulvis/hell/service/internal/game"
	"github.com/nixpulvis/hell/service/internal/history"
	"github.com/nixpulvis/hell/service/internal/remote"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadDealer()
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
		logger.WithError(err).Fatal("Dealer failed.")
	}
}

func run(ctx context.Context, cfg config.Dealer, logger *logrus.Logger) error {
	var pub history.Publisher = history.Nop{}
	if cfg.RedisAddr != "" {
		rp, err := history.NewRedisPublisher(ctx, cfg.RedisAddr, cfg.RedisChannel)
		if err != nil {
			return err
		}
		pub = rp
	}
	defer pub.Close()

	lobby := remote.NewLobby(cfg.Players, cfg.SignUpTimeout, logger)
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	srv := &http.Server{Handler: lobby, ReadHeaderTimeout: 10 * time.Second}
	logger.WithField("addr", ln.Addr().String()).Info("Waiting for players.")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer func() {
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdown)
		}()

		signupCtx, cancel := context.WithTimeout(ctx, cfg.SignUpTimeout)
		seated, err := lobby.Wait(signupCtx, cfg.Players)
		cancel()
		if err != nil {
			return err
		}
		choosers := make([]engine.Chooser, len(seated))
		infos := make([]string, len(seated))
		for i, ch := range seated {
			ch.SetTimeout(cfg.ChooseTimeout)
			choosers[i] = ch
			infos[i] = ch.Info
		}

		session, err := game.NewSession(choosers, infos, cfg.Seed, cfg.WateringHole, logger)
		if err != nil {
			return err
		}
		session.Publisher = pub
		if err := session.Run(ctx); err != nil {
			return err
		}
		for _, line := range session.Scoreboard() {
			fmt.Println(line)
		}
		return nil
	})
	return g.Wait()
}
