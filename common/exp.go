package common

import "math/big"

// ExpMod computes base^exp mod n, returning the canonical representative
// in [0, n). This is the spec's black-box `exp_mod`: for exp == 0 it
// returns 1, for exp > 0 the usual modular power. big.Int.Exp already
// performs square-and-multiply internally, which is what the spec asks a
// faithful implementation to prefer over a linear multiplication loop.
func ExpMod(base, exp, n *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, n)
}
