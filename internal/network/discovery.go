// Package network owns the host's UDP surface: the discovery responder that
// lets clients find the host on the LAN and the receiver that carries the
// command stream.
package network

import (
	"encoding/json"
	"net"
	"strings"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

// DiscoverProbe is the payload clients broadcast to find hosts.
const DiscoverProbe = "DISCOVER"

const discoveryBufferSize = 1024

// DiscoveryReply is the answer to a discovery probe.
type DiscoveryReply struct {
	Hostname string `json:"hostname"`
}

// Responder answers LAN discovery probes with the host's name so clients
// can list hosts without manual addressing.
type Responder struct {
	conn   *net.UDPConn
	reply  []byte
	logger golog.Logger
	done   chan struct{}
}

// NewResponder binds the discovery socket. The reply is fixed at
// construction, carrying the given hostname.
func NewResponder(bind string, port int, hostname string, logger golog.Logger) (*Responder, error) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP(bind), Port: port})
	if err != nil {
		return nil, errors.Wrapf(err, "binding discovery socket on %s:%d", bind, port)
	}
	reply, err := json.Marshal(DiscoveryReply{Hostname: hostname})
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "encoding discovery reply")
	}
	return &Responder{
		conn:   conn,
		reply:  reply,
		logger: logger,
		done:   make(chan struct{}),
	}, nil
}

// Addr returns the bound socket address.
func (r *Responder) Addr() *net.UDPAddr {
	return r.conn.LocalAddr().(*net.UDPAddr)
}

// Run answers probes until Close. The probe match tolerates surrounding
// whitespace; anything else is ignored. Reply send failures are logged and
// do not stop the loop.
func (r *Responder) Run() error {
	r.logger.Infow("answering discovery probes", "addr", r.conn.LocalAddr().String())

	buf := make([]byte, discoveryBufferSize)
	for {
		n, remote, err := r.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-r.done:
				return nil
			default:
			}
			r.logger.Errorw("discovery receive error", "error", err)
			continue
		}

		if strings.TrimSpace(string(buf[:n])) != DiscoverProbe {
			continue
		}
		if _, err := r.conn.WriteToUDP(r.reply, remote); err != nil {
			r.logger.Errorw("discovery reply failed", "remote", remote.String(), "error", err)
			continue
		}
		r.logger.Debugw("answered discovery probe", "remote", remote.String())
	}
}

// Close unblocks Run and releases the socket.
func (r *Responder) Close() error {
	close(r.done)
	return r.conn.Close()
}
