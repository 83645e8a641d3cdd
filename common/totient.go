package common

import "math/big"

// TotientSlow computes Euler's totient of n by trial factorization up to
// sqrt(n). It is deliberately slow: per spec.md §4.1 this is the bottleneck
// that gives the force-open path its "timed" character, and is only ever
// invoked on composites whose prime factors are small enough for trial
// division to be affordable.
func TotientSlow(n *big.Int) *big.Int {
	result := new(big.Int).Set(n)
	remaining := new(big.Int).Set(n)

	one := big.NewInt(1)
	two := big.NewInt(2)

	if remaining.Bit(0) == 0 {
		for remaining.Bit(0) == 0 {
			remaining.Div(remaining, two)
		}
		result = stripFactor(result, two)
	}

	p := big.NewInt(3)
	pSquared := new(big.Int)
	for pSquared.Mul(p, p).Cmp(remaining) <= 0 {
		if new(big.Int).Mod(remaining, p).Sign() == 0 {
			for new(big.Int).Mod(remaining, p).Sign() == 0 {
				remaining.Div(remaining, p)
			}
			result = stripFactor(result, p)
		}
		p.Add(p, two)
	}

	if remaining.Cmp(one) > 0 {
		result = stripFactor(result, remaining)
	}

	if result.Sign() < 1 {
		return big.NewInt(1)
	}
	return result
}

// stripFactor multiplies result by (1 - 1/prime), i.e. result -= result/prime.
func stripFactor(result, prime *big.Int) *big.Int {
	quotient := new(big.Int).Div(result, prime)
	return result.Sub(result, quotient)
}
