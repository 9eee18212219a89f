package input

import (
	"fmt"

	"github.com/edaniels/golog"

	"pointz/internal/protocol"
)

// Dispatcher routes decoded commands to the platform simulator, one command
// at a time. The caller's receive loop does not read the next datagram until
// Dispatch returns.
type Dispatcher struct {
	sim      Simulator
	logger   golog.Logger
	onActive func(protocol.CommandType)
}

// NewDispatcher creates a dispatcher around a simulator backend.
func NewDispatcher(sim Simulator, logger golog.Logger) *Dispatcher {
	return &Dispatcher{sim: sim, logger: logger}
}

// OnActivity registers a callback invoked after every successfully
// dispatched command. Used to feed the status page's live feed.
func (d *Dispatcher) OnActivity(fn func(protocol.CommandType)) {
	d.onActive = fn
}

// Dispatch executes one command against the simulator. The command set is
// closed; a concrete type this switch does not know cannot come from Decode
// and means corrupted program state.
func (d *Dispatcher) Dispatch(cmd protocol.Command) error {
	var (
		kind protocol.CommandType
		err  error
	)

	switch c := cmd.(type) {
	case protocol.MouseMove:
		kind, err = protocol.CmdMouseMove, d.sim.MouseMove(c.X, c.Y)
	case protocol.MouseClick:
		kind, err = protocol.CmdMouseClick, d.sim.MouseClick(c.Button)
	case protocol.MouseDown:
		kind, err = protocol.CmdMouseDown, d.sim.MouseDown(c.Button)
	case protocol.MouseUp:
		kind, err = protocol.CmdMouseUp, d.sim.MouseUp(c.Button)
	case protocol.MouseScroll:
		kind, err = protocol.CmdMouseScroll, d.sim.MouseScroll(c.DeltaX, c.DeltaY)
	case protocol.KeyPress:
		kind, err = protocol.CmdKeyPress, d.sim.KeyPress(c.Key, c.Modifiers)
	case protocol.KeyRelease:
		kind, err = protocol.CmdKeyRelease, d.sim.KeyRelease(c.Key)
	case protocol.ModifierPress:
		kind, err = protocol.CmdModifierPress, d.sim.ModifierPress(c.Modifier)
	case protocol.ModifierRelease:
		kind, err = protocol.CmdModifierRelease, d.sim.ModifierRelease(c.Modifier)
	default:
		panic(fmt.Sprintf("unhandled command type %T", cmd))
	}

	if err != nil {
		return err
	}
	d.logger.Debugw("command dispatched", "type", kind)
	if d.onActive != nil {
		d.onActive(kind)
	}
	return nil
}
