// Package committer implements the committing party of the timed
// commitment protocol: RSA-like modulus setup, construction of the
// commitment, the bind-proof prover, and the fast (normal) opening.
//
// Grounded on original_source/src/committer.rs.
package committer

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/topanisto/timed-commitments/common"
)

// CommitPhaseMsg is the wire message sent from Committer to Verifier at
// commit time: the timed commitment itself, the verification chain W, and
// the exponent product used to check the normal opening.
type CommitPhaseMsg struct {
	H, G, U   *big.Int
	S         []bool
	W         []*big.Int
	ExpPrimes *big.Int
}

// bindState holds the prover randomness for the bind proof; it only
// exists once BindingSetup has run, mirroring the Fresh -> Committed tagged
// state recommended in the design notes rather than nullable fields.
type bindState struct {
	q      *big.Int
	alphas []*big.Int
}

// Committer is constructed once per commitment, emits exactly one commit
// message, may respond once to a challenge vector, and may emit exactly
// one normal opening.
type Committer struct {
	params common.Params

	m *big.Int
	l int

	p1, p2  *big.Int
	n       *big.Int
	totient *big.Int

	h, g      *big.Int
	w         []*big.Int
	expPrimes *big.Int
	vExp      *big.Int
	v         *big.Int
	vPrime    *big.Int

	bind *bindState
}

// New samples a fresh Blum-integer modulus and derives the generator g for
// a commitment to m, per spec.md §4.2.
func New(m *big.Int, params common.Params) (*Committer, error) {
	if m == nil || m.Sign() < 0 {
		return nil, errors.New("committer: message must be a non-negative integer")
	}

	p1, err := common.GetBlumPrime(params.Bits)
	if err != nil {
		return nil, errors.Wrap(err, "committer: failed to generate p1")
	}
	var p2 *big.Int
	for {
		p2, err = common.GetBlumPrime(params.Bits)
		if err != nil {
			return nil, errors.Wrap(err, "committer: failed to generate p2")
		}
		if p2.Cmp(p1) != 0 {
			break
		}
	}

	n := new(big.Int).Mul(p1, p2)
	totient := new(big.Int).Mul(
		new(big.Int).Sub(p1, big.NewInt(1)),
		new(big.Int).Sub(p2, big.NewInt(1)),
	)

	h := common.GetRandomPositiveInt(n)

	g, expPrimes := generateG(h, n, totient, params)

	l := m.BitLen()
	vExp := computeVExp(params.K, l, totient)

	common.Logger.Debugf("committer: initialized with N of %d bits, l=%d", n.BitLen(), l)

	return &Committer{
		params:    params,
		m:         new(big.Int).Set(m),
		l:         l,
		p1:        p1,
		p2:        p2,
		n:         n,
		totient:   totient,
		h:         h,
		g:         g,
		expPrimes: expPrimes,
		vExp:      vExp,
	}, nil
}

// BroadcastN returns the public modulus N.
func (c *Committer) BroadcastN() *big.Int {
	return new(big.Int).Set(c.n)
}

// Commit runs the commit phase, producing the timed commitment and the
// verification chain W that will later support the bind proof.
func (c *Committer) Commit() *CommitPhaseMsg {
	u := generateU(c.g, c.n, c.totient, c.params.K)
	s := c.generateS()
	w := generateW(c.g, c.n, c.totient, c.params.K)

	c.w = w

	common.Logger.Debugf("committer: commit phase complete")

	return &CommitPhaseMsg{
		H:         new(big.Int).Set(c.h),
		G:         new(big.Int).Set(c.g),
		U:         u,
		S:         s,
		W:         w,
		ExpPrimes: new(big.Int).Set(c.expPrimes),
	}
}

// generateG derives g := h^(prod_{q in Q} q^Bits) mod N, where Q is the
// set of small primes below params.B, per spec.md §4.2 (*). The exponent,
// reduced mod phi(N), is also returned as exp_primes since the Verifier
// needs the identical value to check the normal opening.
func generateG(h, n, totient *big.Int, params common.Params) (*big.Int, *big.Int) {
	qs := common.SmallPrimesBelow(params.B)
	modTotient := common.NewModInt(totient)

	bits := big.NewInt(int64(params.Bits))
	exponent := big.NewInt(1)
	for _, q := range qs {
		exponent = modTotient.Mul(exponent, modTotient.Exp(q, bits))
	}

	g := common.ExpMod(h, exponent, n)
	return g, exponent
}

// generateU computes u = g^(2^(2^K)) mod N. The exponent 2^(2^K) mod
// phi(N) is obtained by K successive squarings of 2 modulo phi(N), never
// materializing 2^(2^K) itself (which is astronomically large for any
// realistic K).
func generateU(g, n, totient *big.Int, k uint) *big.Int {
	exp := towerExponent(totient, k)
	return common.ExpMod(g, exp, n)
}

// towerExponent computes 2^(2^k) mod m via k successive squarings
// starting from 2.
func towerExponent(m *big.Int, k uint) *big.Int {
	modM := common.NewModInt(m)
	a := big.NewInt(2)
	for i := uint(0); i < k; i++ {
		a = modM.Mul(a, a)
	}
	return a
}

// computeVExp computes v_exp = 2^(2^K - l) mod phi(N). Unlike
// towerExponent, 2^K - l is small enough (K bits) to be used directly as
// an exponent via a single modular exponentiation.
func computeVExp(k uint, l int, totient *big.Int) *big.Int {
	twoK := new(big.Int).Lsh(big.NewInt(1), k)
	exp := new(big.Int).Sub(twoK, big.NewInt(int64(l)))
	return common.ExpMod(big.NewInt(2), exp, totient)
}

// generateS produces the obfuscated message S: S_i = m_i xor
// lsb(v^(2^(l-1-i))), where m_i is bit i of m and v = g^v_exp mod N. The
// pad is produced MSB-first: the most significant bit of m is masked with
// lsb(v), the next with lsb(v^2), and so on down to the LSB. Squaring v itself (not its exponent)
// at each step walks the v, v^2, v^4, ... sequence in N multiplications,
// independent of phi(N). v' = h^v_exp mod N is cached alongside v: it is
// the value the normal-open path reveals, letting the Verifier re-derive
// v = (v')^exp_primes mod N itself rather than trusting a claimed v.
func (c *Committer) generateS() []bool {
	bits := make([]bool, c.l)
	mTemp := new(big.Int).Set(c.m)
	for i := 0; i < c.l; i++ {
		bits[i] = mTemp.Bit(0) == 1
		mTemp.Rsh(mTemp, 1)
	}
	// bits[0] is the LSB of m; we need the MSB-first bit, i.e. bits in
	// reverse, matching the commit exponent schedule below.

	modN := common.NewModInt(c.n)
	c.v = common.ExpMod(c.g, c.vExp, c.n)
	c.vPrime = common.ExpMod(c.h, c.vExp, c.n)

	cur := c.v
	s := make([]bool, c.l)
	for i := 0; i < c.l; i++ {
		lsb := cur.Bit(0) == 1
		mBit := bits[c.l-1-i]
		s[c.l-1-i] = mBit != lsb
		cur = modN.Mul(cur, cur)
	}
	return s
}

// generateW builds the chained verification vector W = [w_0, ..., w_K]
// with w_0 = g^2 mod N and w_i = w_{i-1}^(2^(2^(i-1))) mod N.
func generateW(g, n, totient *big.Int, k uint) []*big.Int {
	modN := common.NewModInt(n)
	modTotient := common.NewModInt(totient)

	w := make([]*big.Int, k+1)
	w[0] = modN.Mul(g, g)

	power := big.NewInt(2)
	for i := uint(1); i <= k; i++ {
		w[i] = modN.Exp(w[i-1], power)
		power = modTotient.Mul(power, power)
	}
	return w
}
