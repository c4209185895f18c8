package notify

import (
	"fmt"
	"testing"

	"github.com/angelmondragon/scent-storefront/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrainReturnsInOrderAndEmpties(t *testing.T) {
	q := NewQueue()
	q.Success("Order placed successfully!")
	q.Error("Failed to update cart")
	q.Info("")

	got := q.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, types.NoticeSuccess, got[0].Level)
	assert.Equal(t, "Failed to update cart", got[1].Message)
	assert.Zero(t, q.Len())
	assert.Empty(t, q.Drain())
}

func TestQueueKeepsNewestWhenFull(t *testing.T) {
	q := NewQueue()
	for i := 0; i < maxPending+5; i++ {
		q.Info(fmt.Sprintf("n%d", i))
	}
	got := q.Drain()
	require.Len(t, got, maxPending)
	assert.Equal(t, "n5", got[0].Message)
}

func TestNilQueueIsSafe(t *testing.T) {
	var q *Queue
	q.Error("ignored")
	assert.Nil(t, q.Drain())
	assert.Zero(t, q.Len())
}
