package completion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetPendingRequest(t *testing.T) {
	p := pendingRequestStore{}

	firstCtx, firstCancel := context.WithCancel(context.Background())
	defer firstCancel()
	first := p.setPendingRequest(1, firstCancel)
	assert.True(t, p.isCurrent(1, first))
	assert.NoError(t, firstCtx.Err())

	_, secondCancel := context.WithCancel(context.Background())
	defer secondCancel()
	second := p.setPendingRequest(1, secondCancel)

	assert.NotEqual(t, first, second)
	assert.ErrorIs(t, firstCtx.Err(), context.Canceled)
	assert.False(t, p.isCurrent(1, first))
	assert.True(t, p.isCurrent(1, second))
}

func TestDeletePendingRequest(t *testing.T) {
	p := pendingRequestStore{}
	assert.False(t, p.deletePendingRequest(1, "missing"))

	cancel := func() {}
	first := p.setPendingRequest(1, cancel)
	second := p.setPendingRequest(1, cancel)

	assert.False(t, p.deletePendingRequest(1, first))
	assert.True(t, p.isCurrent(1, second))
	assert.True(t, p.deletePendingRequest(1, second))
	assert.False(t, p.isCurrent(1, second))
}

func TestCancelPendingRequest(t *testing.T) {
	p := pendingRequestStore{}
	assert.False(t, p.cancelPendingRequest(1))

	ctx1, cancel1 := context.WithCancel(context.Background())
	defer cancel1()
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	p.setPendingRequest(1, cancel1)
	p.setPendingRequest(2, cancel2)

	assert.True(t, p.cancelPendingRequest(1))
	assert.ErrorIs(t, ctx1.Err(), context.Canceled)
	assert.NoError(t, ctx2.Err())

	p.cancelAll()
	assert.ErrorIs(t, ctx2.Err(), context.Canceled)
	assert.Empty(t, p.pendingRequests)
}
