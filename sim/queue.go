// Implements the BuyerQueue, which holds every buyer waiting for a till.
// Buyers are enqueued on arrival and leave from the head when a till is free.

package sim

import (
	"fmt"
	"strings"
)

// BuyerQueue is a bounded FIFO queue of buyers.
// Its length never exceeds its capacity: an enqueue on a full queue fails.
type BuyerQueue struct {
	queue    []*Buyer // FIFO queue of buyers, head at index 0
	capacity int
}

// NewBuyerQueue creates an empty queue holding at most capacity buyers.
func NewBuyerQueue(capacity int) *BuyerQueue {
	return &BuyerQueue{
		queue:    make([]*Buyer, 0, capacity),
		capacity: capacity,
	}
}

// Enqueue adds a buyer to the back of the queue.
// Returns an error wrapping ErrQueueOverflow if the queue is already full;
// the queue is left unchanged in that case.
func (bq *BuyerQueue) Enqueue(b *Buyer) error {
	if b == nil {
		panic("Enqueue: buyer must not be nil")
	}
	if len(bq.queue) >= bq.capacity {
		return fmt.Errorf("%w: cannot add %s, queue already holds %d buyers", ErrQueueOverflow, b.ID, bq.capacity)
	}
	bq.queue = append(bq.queue, b)
	return nil
}

// Dequeue removes and returns the buyer at the head of the queue.
// Returns nil if the queue is empty.
func (bq *BuyerQueue) Dequeue() *Buyer {
	if len(bq.queue) == 0 {
		return nil
	}
	head := bq.queue[0]
	// shift in place so the backing array stays at capacity
	copy(bq.queue, bq.queue[1:])
	bq.queue[len(bq.queue)-1] = nil
	bq.queue = bq.queue[:len(bq.queue)-1]
	return head
}

// Peek returns the buyer at the head of the queue without removing it.
// Returns nil if the queue is empty.
func (bq *BuyerQueue) Peek() *Buyer {
	if len(bq.queue) == 0 {
		return nil
	}
	return bq.queue[0]
}

// Len returns the number of buyers in the queue.
func (bq *BuyerQueue) Len() int {
	return len(bq.queue)
}

// Cap returns the maximum number of buyers the queue can hold.
func (bq *BuyerQueue) Cap() int {
	return bq.capacity
}

// Items returns the queue contents in join order.
// The returned slice is the queue's internal storage; callers MUST NOT modify it.
func (bq *BuyerQueue) Items() []*Buyer {
	return bq.queue
}

// IncrementWaiting adds one tick of waiting time to every queued buyer.
func (bq *BuyerQueue) IncrementWaiting() {
	for _, b := range bq.queue {
		b.WaitingTicks++
	}
}

func (bq *BuyerQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, b := range bq.queue {
		sb.WriteString(b.ID)
		if i < len(bq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
