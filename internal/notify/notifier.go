// Package notify delivers rendered reports to the configured recipients.
// Every recipient gets its own Sender; delivery is fan-out with per-recipient
// failure isolation, so one rejected message never blocks the others.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Sender is the interface each delivery target must implement.
type Sender interface {
	// Send delivers a message body to the sender's recipient.
	Send(ctx context.Context, text string) error
	// Name returns a human-readable identifier for logging (e.g.
	// "telegram:123456").
	Name() string
}

// Notifier dispatches a message to one or more Senders.
type Notifier struct {
	senders []Sender
	logger  *slog.Logger
}

// NewNotifier creates a Notifier that will deliver to the given senders.
func NewNotifier(senders []Sender, logger *slog.Logger) *Notifier {
	return &Notifier{
		senders: senders,
		logger:  logger.With(slog.String("component", "notifier")),
	}
}

// Broadcast sends the text to every sender. Errors from individual senders
// are logged and collected into a combined error; a single failure does not
// prevent delivery to the remaining senders, and the combined error is
// informational — callers report it but do not abort on it.
func (n *Notifier) Broadcast(ctx context.Context, text string) error {
	if len(n.senders) == 0 {
		return nil
	}

	var errs []string
	for _, s := range n.senders {
		if err := s.Send(ctx, text); err != nil {
			n.logger.ErrorContext(ctx, "sender failed",
				slog.String("sender", s.Name()),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Sprintf("%s: %v", s.Name(), err))
		} else {
			n.logger.DebugContext(ctx, "message delivered",
				slog.String("sender", s.Name()),
			)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("notify: %d sender(s) failed: %s", len(errs), strings.Join(errs, "; "))
	}
	return nil
}
