package agent

import (
	"context"
	"errors"
	"fmt"

	engine "github.com/nixpulvis/hell/engine"
	lua "github.com/yuin/gopher-lua"
)

// FeedFunc is the global a Lua strategy script must define. It is called as
// choose_feed(choices, observation) and returns the 1-based index of the
// chosen feeding, or 0 or nil to pass.
const FeedFunc = "choose_feed"

// ErrNoFeedFunc is returned by NewLuaChooser for a script without FeedFunc.
var ErrNoFeedFunc = errors.New("script does not define " + FeedFunc)

// LuaChooser asks a Lua script which feeding to make. Actions are chosen
// like Silly. A LuaChooser serves one player and is not safe for concurrent
// use.
type LuaChooser struct {
	L *lua.LState
}

var _ engine.Chooser = (*LuaChooser)(nil)

// NewLuaChooser runs script and checks that it defines FeedFunc.
func NewLuaChooser(script string) (*LuaChooser, error) {
	L := lua.NewState()
	if err := L.DoString(script); err != nil {
		L.Close()
		return nil, fmt.Errorf("load strategy: %w", err)
	}
	if L.GetGlobal(FeedFunc).Type() != lua.LTFunction {
		L.Close()
		return nil, ErrNoFeedFunc
	}
	return &LuaChooser{L: L}, nil
}

// Close releases the Lua state.
func (c *LuaChooser) Close() { c.L.Close() }

// Start ignores the deal.
func (c *LuaChooser) Start(context.Context, engine.DealObservation) error { return nil }

// ChooseAction plays like Silly.
func (c *LuaChooser) ChooseAction(_ context.Context, obs engine.ActionObservation) (*engine.ActionChoice, error) {
	return SillyAction(obs.Player), nil
}

// ChooseFeed calls the script with the legal feedings. The context bounds
// the script's run time.
func (c *LuaChooser) ChooseFeed(ctx context.Context, obs engine.FeedObservation) (*engine.FeedChoice, error) {
	choices := obs.Choices()
	if len(choices) == 0 {
		return nil, nil
	}

	c.L.SetContext(ctx)
	defer c.L.RemoveContext()

	err := c.L.CallByParam(lua.P{
		Fn:      c.L.GetGlobal(FeedFunc),
		NRet:    1,
		Protect: true,
	}, encodeChoices(c.L, choices), encodeFeedObservation(c.L, obs))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", FeedFunc, err)
	}
	ret := c.L.Get(-1)
	c.L.Pop(1)

	switch v := ret.(type) {
	case *lua.LNilType:
		return nil, nil
	case lua.LNumber:
		i := int(v)
		if i == 0 {
			return nil, nil
		}
		if float64(i) != float64(v) || i < 1 || i > len(choices) {
			return nil, fmt.Errorf("%s returned %v, want an index in [1, %d]", FeedFunc, v, len(choices))
		}
		choice := choices[i-1]
		return &choice, nil
	default:
		return nil, fmt.Errorf("%s returned a %s, want a number", FeedFunc, ret.Type())
	}
}
