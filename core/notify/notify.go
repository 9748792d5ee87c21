// Package notify publishes coverage outcomes to people who were not at the
// console when the run happened, such as staff room display boards.
package notify

import (
	"context"
	"time"

	"github.com/kilianp07/coverage/core/assign"
)

// Message is one published run.
type Message struct {
	ID      string          `json:"message_id"`
	RunID   string          `json:"run_id"`
	Outcome *assign.Outcome `json:"outcome"`
	Report  string          `json:"report"`
	SentAt  time.Time       `json:"sent_at"`
}

// Notifier delivers messages. Implementations may retry but must honour ctx.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
	Close() error
}

// Nop discards messages.
type Nop struct{}

func (Nop) Notify(context.Context, Message) error { return nil }
func (Nop) Close() error                          { return nil }
