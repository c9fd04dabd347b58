// Command xstep reads a game Configuration on stdin, advances it with silly
// players and writes the resulting Configuration to stdout.
//
// By default the current player makes one feeding. With -round a full round
// runs instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	engine "github.com/nixpulvis/hell/engine"
	"github.com/nixpulvis/hell/engine/agent"
	"github.com/nixpulvis/hell/service/internal/wire"
	"github.com/sirupsen/logrus"
)

func main() {
	round := flag.Bool("round", false, "run a full round instead of one feeding")
	verbose := flag.Bool("v", false, "log engine steps to stderr")
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	if err := run(context.Background(), os.Stdin, os.Stdout, *round, logger); err != nil {
		logger.WithError(err).Error("xstep failed.")
		os.Exit(1)
	}
}

func run(ctx context.Context, in io.Reader, out io.Writer, round bool, logger logrus.FieldLogger) error {
	var cfg wire.Configuration
	if err := json.NewDecoder(in).Decode(&cfg); err != nil {
		return fmt.Errorf("read configuration: %w", err)
	}
	choosers := make([]engine.Chooser, len(cfg.Players))
	for i := range choosers {
		choosers[i] = agent.Silly{}
	}
	g, err := cfg.Game(choosers)
	if err != nil {
		return err
	}
	g.SetLogger(logger)

	step := g.FeedOnce
	if round {
		step = g.Round
	}
	if err := step(ctx); err != nil {
		return err
	}
	return json.NewEncoder(out).Encode(wire.ConfigurationOf(g))
}
