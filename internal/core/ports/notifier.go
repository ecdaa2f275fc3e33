package ports

import "context"

// Notifier delivers a rendered message to one destination channel.
// Implementations own all delivery mechanics, including message-length
// trimming and chunking.
type Notifier interface {
	Send(ctx context.Context, text string) error
	Channel() string
}
