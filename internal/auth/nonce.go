package auth

import (
	"sync/atomic"
	"time"
)

// Nonce issues strictly increasing values for one credential set. Values
// track the wall clock in milliseconds but never repeat or regress, even
// when issued faster than the clock advances.
type Nonce struct {
	last atomic.Int64
}

func NewNonce() *Nonce {
	n := &Nonce{}
	n.last.Store(time.Now().UnixMilli())
	return n
}

func (n *Nonce) Next() int64 {
	for {
		prev := n.last.Load()
		next := time.Now().UnixMilli()
		if next <= prev {
			next = prev + 1
		}
		if n.last.CompareAndSwap(prev, next) {
			return next
		}
	}
}
