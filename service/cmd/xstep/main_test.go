package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	engine "github.com/nixpulvis/hell/engine"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

const hungry = `[
  [
    [["id",1],["species",[[["food",0],["body",0],["population",1],["traits",[]]]]],["bag",0]],
    [["id",2],["species",[]],["bag",0]],
    [["id",3],["species",[]],["bag",0]]
  ],
  3,
  []
]`

func TestRunFeedOnce(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), strings.NewReader(hungry), &out, false, quietLogger()))

	want := `[
  [
    [["id",1],["species",[[["food",1],["body",0],["population",1],["traits",[]]]]],["bag",0]],
    [["id",2],["species",[]],["bag",0]],
    [["id",3],["species",[]],["bag",0]]
  ],
  2,
  []
]`
	assert.JSONEq(t, want, out.String())
}

func TestRunFeedsOnlyTheCurrentPlayer(t *testing.T) {
	in := `[
  [
    [["id",1],["species",[[["food",0],["body",0],["population",1],["traits",[]]]]],["bag",0]],
    [["id",2],["species",[[["food",0],["body",0],["population",1],["traits",[]]]]],["bag",0]],
    [["id",3],["species",[]],["bag",0]]
  ],
  3,
  []
]`
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), strings.NewReader(in), &out, false, quietLogger()))

	want := `[
  [
    [["id",1],["species",[[["food",1],["body",0],["population",1],["traits",[]]]]],["bag",0]],
    [["id",2],["species",[[["food",0],["body",0],["population",1],["traits",[]]]]],["bag",0]],
    [["id",3],["species",[]],["bag",0]]
  ],
  2,
  []
]`
	assert.JSONEq(t, want, out.String())
}

func TestRunRoundNeedsCards(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), strings.NewReader(hungry), &out, true, quietLogger())
	assert.ErrorIs(t, err, engine.ErrResourceExhausted)
	assert.Empty(t, out.String())
}

func TestRunRejectsInput(t *testing.T) {
	for name, in := range map[string]string{
		"not json":     `[[`,
		"two players":  `[[[["id",1],["species",[]],["bag",0]],[["id",2],["species",[]],["bag",0]]],0,[]]`,
		"wrong shape":  `{"players":[]}`,
		"duplicate id": `[[[["id",1],["species",[]],["bag",0]],[["id",1],["species",[]],["bag",0]],[["id",3],["species",[]],["bag",0]]],0,[]]`,
	} {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Error(t, run(context.Background(), strings.NewReader(in), &out, false, quietLogger()))
			assert.Empty(t, out.String())
		})
	}
}
