package common

import (
	"math/big"

	"github.com/otiai10/primes"
)

// SmallPrimesBelow returns the set Q = {primes < bound} of spec.md §4.2,
// used to construct the commitment generator g. It is backed by
// otiai10/primes's cached sieve — the same library the teacher's Paillier
// package primes at init() (`primes.Globally.Until(verifyPrimesUntil)`)
// before running its own small-prime divisibility check — instead of
// re-deriving primality by trial division at every call site.
func SmallPrimesBelow(bound int) []*big.Int {
	if bound < 2 {
		return nil
	}
	list := primes.Until(bound).List()
	out := make([]*big.Int, 0, len(list))
	for _, p := range list {
		if int64(p) < int64(bound) {
			out = append(out, big.NewInt(int64(p)))
		}
	}
	return out
}
