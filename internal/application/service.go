package application

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mfern/chattally/internal/domain"
	"github.com/mfern/chattally/internal/ports"
)

const (
	publishInterval = 5 * time.Second
	boardSize       = 3
)

// Service ties the board to its collaborators: it is the ingress handler
// for inbound chat messages, the publisher of periodic top-N snapshots,
// and the dispatcher for operator commands. It holds no mutable state of
// its own; all shared state lives behind the board's lock.
type Service struct {
	board    *domain.Board
	sink     ports.BoardSink
	log      zerolog.Logger
	interval time.Duration
	topSize  int
}

// Option tweaks a Service; used by tests to speed up the publish tick.
type Option func(*Service)

func WithPublishInterval(d time.Duration) Option {
	return func(s *Service) { s.interval = d }
}

func NewService(board *domain.Board, sink ports.BoardSink, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		board:    board,
		sink:     sink,
		log:      log,
		interval: publishInterval,
		topSize:  boardSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleMessage is the ingress path, invoked once per inbound chat event.
// Safe for concurrent use from any number of transport goroutines. The
// board lock is released before anything is logged.
func (s *Service) HandleMessage(msg ports.ChatMessage) {
	switch s.board.Record(msg.Sender, msg.Text) {
	case domain.OutcomeDuplicate:
		s.log.Info().Str("sender", msg.Sender).Msg("duplicate answer ignored")
	case domain.OutcomeFirst:
		s.log.Info().Str("sender", msg.Sender).Int("distinct", s.board.Len()).Msg("new answer observed")
	case domain.OutcomeCounted:
		s.log.Debug().Str("sender", msg.Sender).Msg("answer counted")
	}
}

// Dispatch runs one operator command line. It reports true when the
// command asks for shutdown.
func (s *Service) Dispatch(line string) (exit bool) {
	switch strings.TrimSpace(line) {
	case "clear":
		s.board.Reset()
		s.log.Info().Msg("board cleared")
	case "exit":
		return true
	default:
		s.log.Warn().Str("input", line).Msg("unknown command, recognized commands: clear, exit")
	}
	return false
}

// Run drives the publish ticker and the operator command channel until
// ctx is cancelled, the exit command arrives, or the command channel
// closes.
func (s *Service) Run(ctx context.Context, commands <-chan string) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.publish(ctx)
		case line, ok := <-commands:
			if !ok {
				return nil
			}
			if s.Dispatch(line) {
				return nil
			}
		}
	}
}

// publish snapshots the top entries and hands them to the sink. The
// snapshot is taken under the board lock, the sink write happens after
// the lock is released, so slow sink I/O never blocks ingress. A failed
// write is logged; the next tick replaces it anyway.
func (s *Service) publish(ctx context.Context) {
	entries := s.board.TopN(s.topSize)
	if len(entries) == 0 {
		return
	}

	s.log.Info().Int("answers", len(entries)).Msg("updating output")
	if err := s.sink.Publish(ctx, entries); err != nil {
		s.log.Error().Err(err).Msg("publish board")
	}
}
