// Package nats runs the in-process NATS server that backs the invite outbox.
package nats

import (
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/mark3labs/onboard/internal/logger"
)

const (
	readyTimeout    = 4 * time.Second
	drainTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Embedded bundles an in-process NATS server with a client connection and
// its JetStream context.
type Embedded struct {
	Server *server.Server
	Conn   *nats.Conn
	JS     jetstream.JetStream
}

// Start boots a JetStream-enabled server storing data under dataDir, then
// connects to it in-process. No network port is opened.
func Start(dataDir string) (*Embedded, error) {
	logger.Debug("Starting embedded NATS server with data dir: %s", dataDir)

	ns, err := server.NewServer(&server.Options{
		JetStream:  true,
		StoreDir:   dataDir,
		DontListen: true,
		NoSigs:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(readyTimeout) {
		ns.Shutdown()
		return nil, errors.New("nats server failed to start within timeout")
	}

	nc, err := nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		ns.Shutdown()
		return nil, fmt.Errorf("connecting in-process: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		ns.Shutdown()
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}

	logger.Debug("NATS server ready for connections")
	return &Embedded{Server: ns, Conn: nc, JS: js}, nil
}

// Close drains the connection and stops the server. A drain that fails or
// stalls falls back to a hard close.
func (e *Embedded) Close() error {
	if e == nil {
		return nil
	}

	if e.Conn != nil {
		drainDone := make(chan error, 1)
		go func() { drainDone <- e.Conn.Drain() }()

		select {
		case err := <-drainDone:
			if err != nil {
				logger.Warn("NATS drain failed, forcing close: %v", err)
				e.Conn.Close()
			}
		case <-time.After(drainTimeout):
			logger.Warn("NATS drain timed out after %s, forcing close", drainTimeout)
			e.Conn.Close()
		}
	}

	if e.Server != nil {
		e.Server.Shutdown()

		done := make(chan struct{})
		go func() {
			e.Server.WaitForShutdown()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(shutdownTimeout):
			return errors.New("NATS server shutdown timed out")
		}
	}

	logger.Debug("NATS shutdown complete")
	return nil
}
