package twitch

import (
	"context"
	"errors"
	"fmt"

	irc "github.com/gempir/go-twitch-irc/v4"
	"github.com/rs/zerolog"

	"github.com/mfern/chattally/internal/ports"
)

// Source adapts the go-twitch-irc client to the ChatSource port. The IRC
// client invokes message callbacks from its own goroutines, so whatever
// handler is registered must be safe for concurrent use. Connection,
// auth handshake and outbound rate limiting are the client's concern;
// this process never sends chat messages.
type Source struct {
	client  *irc.Client
	channel string
	log     zerolog.Logger
}

var _ ports.ChatSource = (*Source)(nil)

func NewSource(name, token, channel string, log zerolog.Logger) *Source {
	return &Source{
		client:  irc.NewClient(name, token),
		channel: channel,
		log:     log,
	}
}

// OnMessage registers the ingress handler. Events without a sender or a
// message body are dropped before they reach it.
func (s *Source) OnMessage(handler func(ports.ChatMessage)) {
	s.client.OnPrivateMessage(func(m irc.PrivateMessage) {
		if m.User.Name == "" || m.Message == "" {
			return
		}
		handler(ports.ChatMessage{Sender: m.User.Name, Text: m.Message})
	})
}

// Connect joins the configured channel and blocks until the connection
// ends or ctx is cancelled.
func (s *Source) Connect(ctx context.Context) error {
	s.client.OnConnect(func() {
		s.log.Info().Str("channel", s.channel).Msg("connected to chat")
	})
	s.client.Join(s.channel)

	errCh := make(chan error, 1)
	go func() { errCh <- s.client.Connect() }()

	select {
	case <-ctx.Done():
		return s.Close()
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("chat connection: %w", err)
		}
		return nil
	}
}

func (s *Source) Close() error {
	if err := s.client.Disconnect(); err != nil && !errors.Is(err, irc.ErrConnectionIsNotOpen) {
		return fmt.Errorf("disconnect chat: %w", err)
	}
	return nil
}
