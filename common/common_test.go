package common

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpMod(t *testing.T) {
	// 29^100 mod 11 = 1
	got := ExpMod(big.NewInt(29), big.NewInt(100), big.NewInt(11))
	assert.Equal(t, big.NewInt(1), got)
}

func TestTotientSlow(t *testing.T) {
	got := TotientSlow(big.NewInt(5040))
	assert.Equal(t, big.NewInt(1152), got)
}

func TestMultiplicativeOrder(t *testing.T) {
	got := MultiplicativeOrder(big.NewInt(3), big.NewInt(17), big.NewInt(7))
	assert.Equal(t, big.NewInt(48), got)
}

func TestGetBlumPrime(t *testing.T) {
	p, err := GetBlumPrime(16)
	assert.NoError(t, err)
	assert.True(t, p.ProbablyPrime(20))
	mod4 := new(big.Int).Mod(p, big.NewInt(4))
	assert.Equal(t, big.NewInt(3), mod4)
}

func TestSmallPrimesBelow(t *testing.T) {
	got := SmallPrimesBelow(10)
	want := []*big.Int{big.NewInt(2), big.NewInt(3), big.NewInt(5), big.NewInt(7)}
	assert.Equal(t, want, got)
}

func TestModIntRoundTrip(t *testing.T) {
	n := big.NewInt(119) // 17*7
	mi := NewModInt(n)
	got := mi.Exp(big.NewInt(3), big.NewInt(48))
	assert.Equal(t, big.NewInt(1), got)
}
