package api

import (
	"fmt"

	"github.com/talgya/streetsim/internal/actions"
	"github.com/talgya/streetsim/internal/engine"
	"github.com/talgya/streetsim/internal/state"
)

// Input is one event from a client's keyboard or touch controls.
type Input struct {
	Type  string `json:"type"`
	Dir   int    `json:"dir,omitempty"`   // move_start
	Down  bool   `json:"down,omitempty"`  // duck
	Index int    `json:"index,omitempty"` // buy_item
}

// View is what a client renders: the snapshot plus the slots its lock is
// currently showing.
type View struct {
	State   state.State       `json:"state"`
	Actions actions.Triple    `json:"actions"`
	Shop    []engine.ShopItem `json:"shop,omitempty"`
}

func view(s state.State, lock *actions.Lock) View {
	v := View{State: s, Actions: lock.Observe(actions.Resolve(&s))}
	if s.Flags.ShopMode {
		v.Shop = engine.ShopItems(s.World.Venue.Type)
	}
	return v
}

// command maps an input event to an engine command. Slot presses run the
// action the client's lock is displaying, never a freshly resolved one.
// A press on an empty slot maps to no command.
func command(in Input, lock *actions.Lock) (engine.Command, bool, error) {
	var slot int
	switch in.Type {
	case "start":
		return engine.Command{Op: engine.OpStart}, true, nil
	case "restart":
		lock.Reset()
		return engine.Command{Op: engine.OpRestart}, true, nil
	case "pause":
		return engine.Command{Op: engine.OpPause}, true, nil
	case "move_start":
		if in.Dir != -1 && in.Dir != 1 {
			return engine.Command{}, false, fmt.Errorf("move_start: dir must be -1 or 1, got %d", in.Dir)
		}
		return engine.Command{Op: engine.OpMove, Dir: in.Dir}, true, nil
	case "move_stop":
		return engine.Command{Op: engine.OpMoveStop}, true, nil
	case "duck":
		return engine.Command{Op: engine.OpDuck, Down: in.Down}, true, nil
	case "interact":
		return engine.Command{Op: engine.OpInteract}, true, nil
	case "buy_item":
		return engine.Command{Op: engine.OpBuyItem, Index: in.Index}, true, nil
	case "exit_shop":
		return engine.Command{Op: engine.OpExitShop}, true, nil
	case "action_a":
		slot = 0
	case "action_b":
		slot = 1
	case "action_c":
		slot = 2
	default:
		return engine.Command{}, false, fmt.Errorf("unknown input %q", in.Type)
	}

	shown := lock.Shown()
	a := *shown.Slots()[slot]
	if !a.Set() {
		return engine.Command{}, false, nil
	}
	return engine.Command{Op: engine.OpPress, Action: a}, true, nil
}
