package common

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

// millerRabinRounds matches the confidence level the teacher's paillier
// package relies on via big.Int.ProbablyPrime's default usage elsewhere
// in the pack.
const millerRabinRounds = 20

// GetRandomPositiveInt returns a cryptographically random integer drawn
// uniformly from [0, max). It panics if max is not positive, mirroring the
// teacher's GetRandomPositiveInt which treats that as programmer error.
func GetRandomPositiveInt(max *big.Int) *big.Int {
	if max == nil || max.Sign() <= 0 {
		panic("common: GetRandomPositiveInt requires a positive bound")
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		panic(errors.Wrap(err, "common: failed to read randomness"))
	}
	return n
}

// GetRandomPrimeBits returns a random prime of exactly the given bit
// length, found by rejection sampling candidates through
// (*big.Int).ProbablyPrime.
func GetRandomPrimeBits(bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, errors.New("common: prime bit length must be at least 2")
	}
	for {
		candidate, err := rand.Prime(rand.Reader, bits)
		if err != nil {
			return nil, errors.Wrap(err, "common: prime generation failed")
		}
		if candidate.ProbablyPrime(millerRabinRounds) {
			return candidate, nil
		}
	}
}

// GetBlumPrime returns a random prime p of the given bit length with
// p = 3 (mod 4), as required for the Blum-integer modulus construction of
// spec.md §4.2.
func GetBlumPrime(bits int) (*big.Int, error) {
	four := big.NewInt(4)
	three := big.NewInt(3)
	for {
		p, err := GetRandomPrimeBits(bits)
		if err != nil {
			return nil, err
		}
		if new(big.Int).Mod(p, four).Cmp(three) == 0 {
			return p, nil
		}
	}
}
