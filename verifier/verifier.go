// Package verifier implements the verifying party of the timed commitment
// protocol: receiving the commitment, issuing bind-proof challenges,
// checking the bind proof, the cooperative (normal) opening, and the
// non-cooperative forced opening via trial factorization of N.
//
// Grounded on original_source/src/verifier.rs.
package verifier

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/topanisto/timed-commitments/committer"
	"github.com/topanisto/timed-commitments/common"
)

// Verifier holds the public state accumulated from a single commitment
// session: the modulus, the commit message, and (once drawn) the bind-proof
// challenge vector.
type Verifier struct {
	params common.Params

	n   *big.Int
	msg *committer.CommitPhaseMsg

	challenges []*big.Int
}

// New constructs a Verifier for the given protocol parameters.
func New(params common.Params) *Verifier {
	return &Verifier{params: params}
}

// Receive stores the Committer's broadcast modulus and commit message,
// after checking the chain has the expected shape.
func (v *Verifier) Receive(n *big.Int, msg *committer.CommitPhaseMsg) error {
	if common.AnyIsNil(n, msg.H, msg.G, msg.U, msg.ExpPrimes) {
		return errors.New("verifier: commit message has nil fields")
	}
	if uint(len(msg.W)) != v.params.K+1 {
		return errors.Errorf("verifier: expected chain of length %d, got %d", v.params.K+1, len(msg.W))
	}
	if len(msg.S) == 0 {
		return errors.New("verifier: empty obfuscated message")
	}

	v.n = new(big.Int).Set(n)
	v.msg = msg

	common.Logger.Debugf("verifier: received commitment over %d-bit modulus", n.BitLen())
	return nil
}

// CanOpen reports whether a commitment has been received and is therefore
// eligible for a normal or forced opening.
func (v *Verifier) CanOpen() bool {
	return v.msg != nil
}

// Challenges draws K random prime challenges for the bind proof and caches
// them so VerifyCommitZKP can be checked against the same vector that was
// sent.
func (v *Verifier) Challenges() ([]*big.Int, error) {
	if v.msg == nil {
		return nil, errors.New("verifier: Challenges called before Receive")
	}

	challenges := make([]*big.Int, v.params.K)
	for i := range challenges {
		c, err := common.GetRandomPrimeBits(v.params.RBits)
		if err != nil {
			return nil, errors.Wrap(err, "verifier: failed to draw challenge")
		}
		challenges[i] = c
	}

	v.challenges = challenges
	return challenges, nil
}

// VerifyCommitZKP checks the Committer's bind-proof response against the
// previously-drawn challenges. For each round i, both
//
//	g^y_i * w_{i-1}^-c_i == z_i
//	w_{i-1}^y_i * w_i^-c_i == w_i*
//
// must hold; see DESIGN.md for why the proof is indexed against
// consecutive chain elements (w_{i-1}, w_i) rather than w_i alone.
func (v *Verifier) VerifyCommitZKP(pairs []committer.BindCommitment, responses []*big.Int) (bool, error) {
	if v.msg == nil {
		return false, errors.New("verifier: VerifyCommitZKP called before Receive")
	}
	if v.challenges == nil {
		return false, errors.New("verifier: VerifyCommitZKP called before Challenges")
	}
	k := int(v.params.K)
	if len(pairs) != k || len(responses) != len(v.challenges) || len(v.challenges) != k {
		return false, errors.New("verifier: bind proof round counts do not match")
	}

	modN := common.NewModInt(v.n)
	w := v.msg.W

	for i := 0; i < k; i++ {
		ci := v.challenges[i]
		yi := responses[i]
		wPrev, wCur := w[i], w[i+1]

		invWPrevC := modN.Inverse(modN.Exp(wPrev, ci))
		if invWPrevC == nil {
			return false, nil
		}
		zCheck := modN.Mul(modN.Exp(v.msg.G, yi), invWPrevC)
		if !common.Eq(zCheck, pairs[i].Z) {
			return false, nil
		}

		invWCurC := modN.Inverse(modN.Exp(wCur, ci))
		if invWCurC == nil {
			return false, nil
		}
		wCheck := modN.Mul(modN.Exp(wPrev, yi), invWCurC)
		if !common.Eq(wCheck, pairs[i].WStar) {
			return false, nil
		}
	}

	return true, nil
}

// Open performs the cooperative (fast) opening: the Committer reveals
// v' = h^v_exp mod N, and the Verifier derives v = (v')^exp_primes mod N
// itself, reconstructs m from the squaring/XOR schedule against S, and
// checks the tail relation v^(2^l) == u (mod N) before trusting the result.
func (v *Verifier) Open(vPrime *big.Int) (*big.Int, error) {
	if v.msg == nil {
		return nil, errors.New("verifier: Open called before Receive")
	}
	if vPrime == nil {
		return nil, errors.New("verifier: invalid opening argument")
	}

	modN := common.NewModInt(v.n)
	vVal := modN.Exp(vPrime, v.msg.ExpPrimes)

	m, cur := recoverMessage(modN, vVal, v.msg.S)
	if !common.Eq(cur, v.msg.U) {
		return nil, errors.New("verifier: opening failed tail check")
	}

	common.Logger.Debugf("verifier: normal opening recovered %d-bit message", m.BitLen())
	return m, nil
}

// ForceOpen recovers m without Committer cooperation by factoring N via
// trial division (TotientSlow) and replaying the Committer's own
// construction of v and S. This is the protocol's namesake "timed" path:
// TotientSlow's cost is what makes force-opening slow relative to a
// cooperative open.
func (v *Verifier) ForceOpen() (*big.Int, error) {
	if v.msg == nil {
		return nil, errors.New("verifier: ForceOpen called before Receive")
	}

	totient := common.TotientSlow(v.n)
	l := len(v.msg.S)

	twoK := new(big.Int).Lsh(big.NewInt(1), v.params.K)
	exp := new(big.Int).Sub(twoK, big.NewInt(int64(l)))
	vExp := common.ExpMod(big.NewInt(2), exp, totient)
	vVal := common.ExpMod(v.msg.G, vExp, v.n)

	modN := common.NewModInt(v.n)
	m, _ := recoverMessage(modN, vVal, v.msg.S)

	common.Logger.Infof("verifier: force-opened %d-bit message via trial factorization", l)
	return m, nil
}

// recoverMessage walks v, v^2, v^4, ... mod N, XORing each step's low bit
// against the corresponding S bit to recover m one bit at a time (MSB-first
// production, matching the Committer's generateS). It also returns the
// final squared value, which callers check against u as the tail invariant.
func recoverMessage(modN *common.ModInt, vVal *big.Int, s []bool) (*big.Int, *big.Int) {
	l := len(s)
	m := big.NewInt(0)
	cur := vVal
	for i := 0; i < l; i++ {
		lsb := cur.Bit(0) == 1
		bit := s[l-1-i] != lsb
		if bit {
			m.SetBit(m, l-1-i, 1)
		}
		cur = modN.Mul(cur, cur)
	}
	return m, cur
}
