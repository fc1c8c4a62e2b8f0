package service

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// newOrderNumber builds the human-facing order identifier:
// ORD-<epoch millis>-<6 random base36 chars>. Collisions are not checked;
// the millisecond prefix plus 36^6 suffixes keeps the odds negligible.
func newOrderNumber() string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = orderNumberAlphabet[rand.IntN(len(orderNumberAlphabet))]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}
