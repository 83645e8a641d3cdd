package committer

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/topanisto/timed-commitments/common"
)

// BindCommitment is one round of the bind-proof prover's first message:
// (z_i, w_i*) = (g^alpha_i mod N, w_{i-1}^alpha_i mod N). Pairing each
// round against consecutive chain elements (w_{i-1}, w_i), rather than the
// single w_i the original source indexes, is what lets the two verifier
// checks (§4.3) close unconditionally — see DESIGN.md.
type BindCommitment struct {
	Z, WStar *big.Int
}

// BindingSetup runs the first move of the bind-proof Sigma protocol: for
// each i in [1, K], draw a fresh alpha_i and commit to it against both g
// and the chain element w_{i-1}. Requires Commit to have already run.
func (c *Committer) BindingSetup() ([]BindCommitment, error) {
	if c.w == nil {
		return nil, errors.New("committer: BindingSetup called before Commit")
	}

	q := common.MultiplicativeOrder(c.g, c.p1, c.p2)
	modN := common.NewModInt(c.n)

	k := c.params.K
	alphas := make([]*big.Int, k)
	pairs := make([]BindCommitment, k)

	for i := uint(0); i < k; i++ {
		alpha := common.GetRandomPositiveInt(q)
		alphas[i] = alpha

		z := modN.Exp(c.g, alpha)
		wStar := modN.Exp(c.w[i], alpha) // c.w[i] is w_{i} 0-indexed == w_{i-1} in 1-indexed round i+1

		pairs[i] = BindCommitment{Z: z, WStar: wStar}
	}

	c.bind = &bindState{q: q, alphas: alphas}

	common.Logger.Debugf("committer: bind proof setup complete for %d rounds", k)
	return pairs, nil
}

// ChallengeResponse answers the Verifier's challenge vector c = (c_1, ...,
// c_K) with y_i = alpha_i + c_i * 2^(2^(i-1)) (mod q), the scaling factor
// chasing the same tower-of-twos that chains W.
func (c *Committer) ChallengeResponse(challenges []*big.Int) ([]*big.Int, error) {
	if c.bind == nil {
		return nil, errors.New("committer: ChallengeResponse called before BindingSetup")
	}
	if len(challenges) != len(c.bind.alphas) {
		return nil, errors.Errorf("committer: expected %d challenges, got %d", len(c.bind.alphas), len(challenges))
	}

	modQ := common.NewModInt(c.bind.q)
	scale := big.NewInt(2) // 2^(2^0)

	y := make([]*big.Int, len(challenges))
	for i, ci := range challenges {
		cScaled := modQ.Mul(ci, scale)
		y[i] = modQ.Add(c.bind.alphas[i], cScaled)
		scale = modQ.Mul(scale, scale)
	}

	common.Logger.Debugf("committer: responded to %d challenges", len(challenges))
	return y, nil
}

// Open reveals v' = h^v_exp mod N, the single value spec.md's normal-open
// path hands the Verifier. The Verifier derives v = (v')^exp_primes mod N
// and reconstructs m from it; the Committer never hands back m directly.
func (c *Committer) Open() *big.Int {
	return new(big.Int).Set(c.vPrime)
}
