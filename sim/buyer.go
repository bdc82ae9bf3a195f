// Defines the Buyer struct that models a single customer in the simulation.
// Tracks the buyer's identity, basket size and the ticks spent queueing.

package sim

import "fmt"

// Buyer models one customer from arrival until a till starts serving them.
// After that point the simulator keeps no reference to the buyer.
type Buyer struct {
	Number       int    // sequential arrival number, starting at 1
	ID           string // display form "B<n>"
	Items        int    // basket size, fixed at arrival
	WaitingTicks int    // ticks spent in the queue after the service step
}

// NewBuyer creates the n-th buyer with the given basket and no waiting time.
func NewBuyer(n, items int) *Buyer {
	return &Buyer{
		Number: n,
		ID:     BuyerID(n),
		Items:  items,
	}
}

// BuyerID returns the display identifier of the n-th buyer.
func BuyerID(n int) string {
	return fmt.Sprintf("B%d", n)
}

func (b Buyer) String() string {
	return fmt.Sprintf("Buyer: (ID: %s, Items: %d, WaitingTicks: %d)", b.ID, b.Items, b.WaitingTicks)
}
