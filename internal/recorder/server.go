package recorder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultQueueSize is the capacity of the event queue.
const DefaultQueueSize = 1024

// Server accepts recording connections and applies their events to a
// Strategy. Decoding runs in one goroutine per connection; a single
// consumer applies the events in queue order and stops the server after
// end-system.
type Server struct {
	listener  net.Listener
	strategy  Strategy
	log       *zap.Logger
	queueSize int
	baseDir   string
	metrics   *Metrics

	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	cancel   context.CancelFunc
	closed   bool
	connErrs error
	sessions []SessionConfig
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithQueueSize sets the capacity of the event queue.
func WithQueueSize(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// WithBaseDir overrides the base directory announced by the clients.
func WithBaseDir(dir string) ServerOption {
	return func(s *Server) {
		s.baseDir = dir
	}
}

// WithMetrics sets the metrics the server reports to.
func WithMetrics(m *Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewServer creates a Server on listener.
func NewServer(listener net.Listener, strategy Strategy, log *zap.Logger, opts ...ServerOption) *Server {
	s := &Server{
		listener:  listener,
		strategy:  strategy,
		log:       log,
		queueSize: DefaultQueueSize,
		conns:     make(map[net.Conn]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.metrics == nil {
		s.metrics = NewMetrics(prometheus.NewRegistry())
	}

	return s
}

// Addr returns the listener address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Sessions returns the configurations received so far.
func (s *Server) Sessions() []SessionConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SessionConfig(nil), s.sessions...)
}

// Serve runs until end-system was applied, ctx is done or Close is called.
// Connection failures do not stop the server; they are returned combined
// when it stops.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.cancel = cancel
	if s.closed {
		cancel()
	}
	s.mu.Unlock()

	queue := make(chan Event, s.queueSize)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.consume(gctx, queue, cancel)
	})

	g.Go(func() error {
		<-gctx.Done()

		return s.shutdown()
	})

	g.Go(func() error {
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}

				return fmt.Errorf("failed to accept: %w", err)
			}

			if !s.track(conn) {
				_ = conn.Close()

				return nil
			}

			g.Go(func() error {
				s.handle(gctx, conn, queue)

				return nil
			})
		}
	})

	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	return multierr.Append(err, s.connErrs)
}

// Close stops the server. A server closed before Serve stops right away.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Server) consume(ctx context.Context, queue <-chan Event, stop context.CancelFunc) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-queue:
			s.metrics.queued(len(queue))
			ev.Apply(s.strategy)

			if ev.Kind() == KindEndSystem {
				s.log.Info("end of recording")
				stop()

				return nil
			}
		}
	}
}

func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conns == nil {
		return false
	}

	s.conns[conn] = struct{}{}

	return true
}

func (s *Server) shutdown() error {
	s.mu.Lock()
	conns := s.conns
	s.conns = nil
	s.mu.Unlock()

	err := s.listener.Close()
	if errors.Is(err, net.ErrClosed) {
		err = nil
	}

	for conn := range conns {
		_ = conn.Close()
	}

	return err
}

func (s *Server) handle(ctx context.Context, conn net.Conn, queue chan<- Event) {
	log := s.log.With(zap.Stringer("remote", conn.RemoteAddr()))

	defer func() {
		_ = conn.Close()
	}()

	err := s.receive(ctx, conn, queue, log)
	if err == nil || ctx.Err() != nil {
		return
	}

	log.Error("connection failed", zap.Error(err))

	s.mu.Lock()
	s.connErrs = multierr.Append(s.connErrs, fmt.Errorf("%s: %w", conn.RemoteAddr(), err))
	s.mu.Unlock()
}

func (s *Server) receive(ctx context.Context, conn io.Reader, queue chan<- Event, log *zap.Logger) error {
	dec := NewDecoder(conn)

	cfg, err := dec.ReadConfig()
	if err != nil {
		return err
	}

	if s.baseDir != "" {
		cfg.BaseDir = s.baseDir
	}

	s.mu.Lock()
	s.sessions = append(s.sessions, cfg)
	s.mu.Unlock()

	log.Info("session started", zap.String("baseDir", cfg.BaseDir), zap.String("out", cfg.OutFileName))

	for {
		ev, err := dec.ReadEvent()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		s.metrics.received(ev.Kind())

		select {
		case queue <- ev:
			s.metrics.queued(len(queue))
		case <-ctx.Done():
			return nil
		}

		if ev.Kind() == KindEndSystem {
			return nil
		}
	}
}
