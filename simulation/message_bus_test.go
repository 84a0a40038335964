package simulation_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bookwerk/bookstore-mas/simulation"
)

const otherMessageType simulation.MessageType = "price_update"

func Test_MessageBus_Drain_ReturnsMatchingMessagesInPublishOrder(t *testing.T) {
	// arrange
	bus := simulation.NewMessageBus()
	firstBook := uuid.New()
	secondBook := uuid.New()

	bus.Publish(simulation.Message{Type: simulation.MessageTypeRestockRequest, BookID: firstBook})
	bus.Publish(simulation.Message{Type: otherMessageType, BookID: uuid.New()})
	bus.Publish(simulation.Message{Type: simulation.MessageTypeRestockRequest, BookID: secondBook})

	// act
	drained := bus.Drain(simulation.MessageTypeRestockRequest)

	// assert
	assert.Len(t, drained, 2)
	assert.Equal(t, firstBook, drained[0].BookID)
	assert.Equal(t, secondBook, drained[1].BookID)
}

func Test_MessageBus_Drain_LeavesOtherTypesPending(t *testing.T) {
	// arrange
	bus := simulation.NewMessageBus()
	bus.Publish(simulation.Message{Type: simulation.MessageTypeRestockRequest, BookID: uuid.New()})
	bus.Publish(simulation.Message{Type: otherMessageType, BookID: uuid.New()})

	// act
	bus.Drain(simulation.MessageTypeRestockRequest)

	// assert
	assert.Equal(t, 1, bus.Pending())

	remaining := bus.Drain(otherMessageType)
	assert.Len(t, remaining, 1)
	assert.Equal(t, otherMessageType, remaining[0].Type)
}

func Test_MessageBus_Drain_IsAtMostOnce(t *testing.T) {
	// arrange
	bus := simulation.NewMessageBus()
	bus.Publish(simulation.Message{Type: simulation.MessageTypeRestockRequest, BookID: uuid.New()})

	// act
	first := bus.Drain(simulation.MessageTypeRestockRequest)
	second := bus.Drain(simulation.MessageTypeRestockRequest)

	// assert
	assert.Len(t, first, 1)
	assert.Empty(t, second)
	assert.Equal(t, 0, bus.Pending())
}

func Test_MessageBus_DrainAll_EmptiesTheQueue(t *testing.T) {
	// arrange
	bus := simulation.NewMessageBus()
	bus.Publish(simulation.Message{Type: simulation.MessageTypeRestockRequest, BookID: uuid.New()})
	bus.Publish(simulation.Message{Type: otherMessageType, BookID: uuid.New()})

	// act
	drained := bus.DrainAll()

	// assert
	assert.Len(t, drained, 2)
	assert.Equal(t, 0, bus.Pending())
}

func Test_MessageBus_Drain_OnEmptyBusReturnsNothing(t *testing.T) {
	bus := simulation.NewMessageBus()

	assert.Empty(t, bus.Drain(simulation.MessageTypeRestockRequest))
	assert.Equal(t, 0, bus.Pending())
}
