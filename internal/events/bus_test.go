package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_SubscribePublish(t *testing.T) {
	b := NewBus()

	count := 0
	id := b.Subscribe(func() { count++ }, false)
	require.NotEmpty(t, id)

	b.Publish()
	b.Publish()
	assert.Equal(t, 2, count)
}

func TestBus_MultipleSubscribers(t *testing.T) {
	b := NewBus()

	var a, c int
	b.Subscribe(func() { a++ }, false)
	b.Subscribe(func() { c++ }, false)
	assert.Equal(t, 2, b.Len())

	b.Publish()
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, c)
}

func TestBus_Unsubscribe(t *testing.T) {
	b := NewBus()

	count := 0
	id := b.Subscribe(func() { count++ }, false)
	b.Unsubscribe(id)
	b.Publish()

	assert.Equal(t, 0, count)
	assert.Equal(t, 0, b.Len())
}

func TestBus_UnsubscribeUnknownID(t *testing.T) {
	b := NewBus()

	// Must be safe on a bus that never had the id.
	assert.NotPanics(t, func() {
		b.Unsubscribe("")
		b.Unsubscribe("no-such-id")
	})
}

func TestBus_ReplayLatest(t *testing.T) {
	b := NewBus()

	// No prior publish: replay does nothing.
	early := 0
	b.Subscribe(func() { early++ }, true)
	assert.Equal(t, 0, early)

	b.Publish()
	assert.Equal(t, 1, early)

	// Prior publish: late subscriber fires once immediately.
	late := 0
	b.Subscribe(func() { late++ }, true)
	assert.Equal(t, 1, late)

	// Without replay, a late subscriber waits for the next publish.
	silent := 0
	b.Subscribe(func() { silent++ }, false)
	assert.Equal(t, 0, silent)
}

func TestBus_UnsubscribeFromCallback(t *testing.T) {
	b := NewBus()

	var id string
	count := 0
	id = b.Subscribe(func() {
		count++
		b.Unsubscribe(id)
	}, false)

	b.Publish()
	b.Publish()
	assert.Equal(t, 1, count)
}
