package common

import "math/big"

// MultiplicativeOrder returns the smallest k >= 1 such that a^k = 1 mod
// (p*q), found by repeated multiplication starting from a itself. It is
// grounded on the Rust source's `get_order` helper, generalized per
// spec.md §4.1 into the literal "smallest k" definition rather than that
// helper's totient/gcd shortcut, since the spec only asks for the order
// and guarantees it is used where repeated multiplication is affordable
// (small prime factors).
func MultiplicativeOrder(a, p, q *big.Int) *big.Int {
	n := new(big.Int).Mul(p, q)
	modN := NewModInt(n)

	one := big.NewInt(1)
	cur := new(big.Int).Mod(a, n)
	k := big.NewInt(1)

	for cur.Cmp(one) != 0 {
		cur = modN.Mul(cur, a)
		k.Add(k, one)
	}
	return k
}
