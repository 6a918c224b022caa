package eventqueue

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationQueue_PreservesOrderPerKey(t *testing.T) {
	q := NewConversationQueue(4)

	var mu sync.Mutex
	seen := make(map[string][]int)
	keys := []string{"channel-a", "channel-b", "channel-c"}

	for i := range 50 {
		for _, key := range keys {
			require.True(t, q.Submit(key, func() {
				mu.Lock()
				seen[key] = append(seen[key], i)
				mu.Unlock()
			}))
		}
	}
	q.Stop()

	for _, key := range keys {
		require.Len(t, seen[key], 50)
		for i, v := range seen[key] {
			assert.Equal(t, i, v, "key %s out of order", key)
		}
	}
}

func TestConversationQueue_DifferentKeysRunConcurrently(t *testing.T) {
	q := NewConversationQueue(16)
	defer q.Stop()

	// find two keys on different shards
	keyA := "channel-0"
	keyB := ""
	for i := 1; i < 100; i++ {
		candidate := fmt.Sprintf("channel-%d", i)
		if q.shardFor(candidate) != q.shardFor(keyA) {
			keyB = candidate
			break
		}
	}
	require.NotEmpty(t, keyB)

	blocked := make(chan struct{})
	done := make(chan struct{})
	q.Submit(keyA, func() { <-blocked })
	q.Submit(keyB, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task on another conversation was blocked")
	}
	close(blocked)
}

func TestConversationQueue_PanicDoesNotStopQueue(t *testing.T) {
	q := NewConversationQueue(1)

	var ran atomic.Bool
	q.Submit("channel-a", func() { panic("boom") })
	q.Submit("channel-a", func() { ran.Store(true) })
	q.Stop()

	assert.True(t, ran.Load())
}

func TestConversationQueue_RejectsAfterStop(t *testing.T) {
	q := NewConversationQueue(2)
	q.Stop()
	q.Stop()

	assert.False(t, q.Submit("channel-a", func() {}))
	assert.Equal(t, 0, q.WaitingTasks())
}
