package simulation

import (
	"github.com/google/uuid"
)

// MessageType identifies the kind of a bus message.
type MessageType string

// MessageTypeRestockRequest asks an employee to restock the carried book.
const MessageTypeRestockRequest MessageType = "restock_request"

// Message is a tagged record on the bus. BookID carries the referenced book
// for restock requests.
type Message struct {
	Type   MessageType
	BookID uuid.UUID
}

// MessageBus is a best-effort, in-memory mailbox. Messages are transient:
// once drained by type they are gone (at-most-once delivery per consumer
// sweep). There is no persistence and no backpressure; unbounded growth is
// acceptable at the expected scale.
type MessageBus struct {
	queue []Message
}

// NewMessageBus creates an empty message bus.
func NewMessageBus() *MessageBus {
	return &MessageBus{}
}

// Publish appends a message to the bus. It never fails.
func (b *MessageBus) Publish(message Message) {
	b.queue = append(b.queue, message)
}

// Drain removes and returns all pending messages of the given type, leaving
// others in place. Returned order preserves publish order (FIFO).
func (b *MessageBus) Drain(messageType MessageType) []Message {
	var drained []Message
	remaining := b.queue[:0]

	for _, message := range b.queue {
		if message.Type == messageType {
			drained = append(drained, message)
			continue
		}

		remaining = append(remaining, message)
	}

	b.queue = remaining

	return drained
}

// DrainAll removes and returns all pending messages; the queue becomes empty.
func (b *MessageBus) DrainAll() []Message {
	drained := b.queue
	b.queue = nil

	return drained
}

// Pending returns the number of undrained messages.
func (b *MessageBus) Pending() int {
	return len(b.queue)
}
