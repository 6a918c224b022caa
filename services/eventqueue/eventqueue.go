package eventqueue

import (
	"hash/fnv"
	"sync"

	"github.com/gammazero/workerpool"

	"kbbridge/core/log"
)

const DefaultShards = 8

// ConversationQueue runs tasks that share a key one at a time, in submission
// order. Keys are hashed onto a fixed set of single-worker pools, so unrelated
// conversations proceed in parallel.
type ConversationQueue struct {
	shards  []*workerpool.WorkerPool
	mu      sync.RWMutex
	stopped bool
}

func NewConversationQueue(shards int) *ConversationQueue {
	if shards <= 0 {
		shards = DefaultShards
	}
	q := &ConversationQueue{shards: make([]*workerpool.WorkerPool, shards)}
	for i := range q.shards {
		q.shards[i] = workerpool.New(1) // Sequential processing per shard
	}
	return q
}

// Submit enqueues task behind every earlier task with the same key. A panic in
// task is logged and does not affect later tasks. Returns false once stopped.
func (q *ConversationQueue) Submit(key string, task func()) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.stopped {
		log.Warn("⚠️ Event queue stopped, dropping task", "key", key)
		return false
	}

	q.shards[q.shardFor(key)].Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("❌ Event task panicked", "key", key, "panic", r)
			}
		}()
		task()
	})
	return true
}

// Stop waits for queued tasks to finish and rejects new ones.
func (q *ConversationQueue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	q.mu.Unlock()

	for _, shard := range q.shards {
		shard.StopWait()
	}
}

// WaitingTasks is the number of queued tasks not yet started.
func (q *ConversationQueue) WaitingTasks() int {
	total := 0
	for _, shard := range q.shards {
		total += shard.WaitingQueueSize()
	}
	return total
}

func (q *ConversationQueue) shardFor(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(q.shards)))
}
