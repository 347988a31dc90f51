package ports

import "context"

// ChatMessage is one inbound chat event as delivered by the transport.
type ChatMessage struct {
	Sender string
	Text   string
}

// ChatSource is the streaming-chat transport collaborator. Handlers must
// be registered before Connect; the transport may invoke a handler from
// any number of its own goroutines concurrently.
type ChatSource interface {
	OnMessage(handler func(ChatMessage))
	Connect(ctx context.Context) error
	Close() error
}
