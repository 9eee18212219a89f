package network

import (
	"net"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"pointz/internal/protocol"
)

const commandBufferSize = 4096

// Receiver owns the command socket. One datagram carries one JSON command;
// commands are handed to the dispatch function strictly in arrival order,
// and the next datagram is not read until it returns.
type Receiver struct {
	conn     *net.UDPConn
	dispatch func(protocol.Command) error
	logger   golog.Logger
	done     chan struct{}
}

// NewReceiver binds the command socket.
func NewReceiver(bind string, port int, dispatch func(protocol.Command) error, logger golog.Logger) (*Receiver, error) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP(bind), Port: port})
	if err != nil {
		return nil, errors.Wrapf(err, "binding command socket on %s:%d", bind, port)
	}
	return &Receiver{
		conn:     conn,
		dispatch: dispatch,
		logger:   logger,
		done:     make(chan struct{}),
	}, nil
}

// Addr returns the bound socket address.
func (r *Receiver) Addr() *net.UDPAddr {
	return r.conn.LocalAddr().(*net.UDPAddr)
}

// Run reads and dispatches commands until Close. Malformed datagrams are
// dropped without a trace; failed injections are logged and the loop keeps
// going.
func (r *Receiver) Run() error {
	r.logger.Infow("listening for commands", "addr", r.conn.LocalAddr().String())

	buf := make([]byte, commandBufferSize)
	for {
		n, _, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-r.done:
				return nil
			default:
			}
			r.logger.Errorw("command receive error", "error", err)
			continue
		}

		cmd, err := protocol.Decode(buf[:n])
		if err != nil {
			continue
		}
		if err := r.dispatch(cmd); err != nil {
			r.logger.Errorw("command error", "error", err)
		}
	}
}

// Close unblocks Run and releases the socket.
func (r *Receiver) Close() error {
	close(r.done)
	return r.conn.Close()
}
