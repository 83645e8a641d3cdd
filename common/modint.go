package common

import "math/big"

// ModInt is a modulus paired with arithmetic helpers that reduce every
// result into [0, N). It mirrors the teacher's `common.ModInt(n)` helper:
// construct once per modulus, then chain Add/Mul/Exp calls without
// re-specifying N at every call site.
type ModInt big.Int

// NewModInt wraps n as a ModInt.
func NewModInt(n *big.Int) *ModInt {
	return (*ModInt)(n)
}

func (mi *ModInt) n() *big.Int {
	return (*big.Int)(mi)
}

// Add returns a+b mod N.
func (mi *ModInt) Add(a, b *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, mi.n())
}

// Sub returns a-b mod N.
func (mi *ModInt) Sub(a, b *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, mi.n())
}

// Mul returns a*b mod N.
func (mi *ModInt) Mul(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, mi.n())
}

// Exp returns a^x mod N.
func (mi *ModInt) Exp(a, x *big.Int) *big.Int {
	return new(big.Int).Exp(a, x, mi.n())
}

// Neg returns -a mod N.
func (mi *ModInt) Neg(a *big.Int) *big.Int {
	r := new(big.Int).Neg(a)
	return r.Mod(r, mi.n())
}

// Inverse returns the modular inverse of a mod N, or nil if a and N are not
// coprime.
func (mi *ModInt) Inverse(a *big.Int) *big.Int {
	return new(big.Int).ModInverse(a, mi.n())
}

// Eq reports whether a and b are equal as integers (not merely congruent).
func Eq(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}

// AnyIsNil reports whether any of the given big.Ints is nil.
func AnyIsNil(xs ...*big.Int) bool {
	for _, x := range xs {
		if x == nil {
			return true
		}
	}
	return false
}
