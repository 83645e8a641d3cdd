package verifier

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topanisto/timed-commitments/committer"
	"github.com/topanisto/timed-commitments/common"
)

func testParams() common.Params {
	return common.Params{Bits: 16, B: 30, K: 4, RBits: 16}
}

func newCommittedPair(t *testing.T, m int64) (*committer.Committer, *Verifier, *committer.CommitPhaseMsg) {
	t.Helper()
	c, err := committer.New(big.NewInt(m), testParams())
	require.NoError(t, err)

	v := New(testParams())
	msg := c.Commit()
	require.NoError(t, v.Receive(c.BroadcastN(), msg))

	return c, v, msg
}

func TestReceiveRejectsWrongChainLength(t *testing.T) {
	v := New(testParams())
	bad := &committer.CommitPhaseMsg{
		H: big.NewInt(1), G: big.NewInt(1), U: big.NewInt(1), ExpPrimes: big.NewInt(1),
		S: []bool{true},
		W: []*big.Int{big.NewInt(1)},
	}
	err := v.Receive(big.NewInt(119), bad)
	assert.Error(t, err)
}

func TestCanOpen(t *testing.T) {
	v := New(testParams())
	assert.False(t, v.CanOpen())

	c, err := committer.New(big.NewInt(42), testParams())
	require.NoError(t, err)
	require.NoError(t, v.Receive(c.BroadcastN(), c.Commit()))
	assert.True(t, v.CanOpen())
}

func TestBindProofCompleteness(t *testing.T) {
	c, v, _ := newCommittedPair(t, 42)

	pairs, err := c.BindingSetup()
	require.NoError(t, err)

	challenges, err := v.Challenges()
	require.NoError(t, err)

	responses, err := c.ChallengeResponse(challenges)
	require.NoError(t, err)

	ok, err := v.VerifyCommitZKP(pairs, responses)
	require.NoError(t, err)
	assert.True(t, ok, "bind proof over an honestly produced commitment must verify")
}

func TestBindProofRejectsTamperedResponse(t *testing.T) {
	c, v, _ := newCommittedPair(t, 42)

	pairs, err := c.BindingSetup()
	require.NoError(t, err)

	challenges, err := v.Challenges()
	require.NoError(t, err)

	responses, err := c.ChallengeResponse(challenges)
	require.NoError(t, err)

	responses[0] = new(big.Int).Add(responses[0], big.NewInt(1))

	ok, err := v.VerifyCommitZKP(pairs, responses)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNormalOpenRoundTrip(t *testing.T) {
	c, v, _ := newCommittedPair(t, 255)

	vPrime := c.Open()
	got, err := v.Open(vPrime)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(255), got)
}

func TestNormalOpenRejectsTamperedVPrime(t *testing.T) {
	c, v, _ := newCommittedPair(t, 42)

	vPrime := c.Open()
	tampered := new(big.Int).Add(vPrime, big.NewInt(1))

	_, err := v.Open(tampered)
	assert.Error(t, err)
}

func TestNormalOpenFlippingOneSBitFlipsOneMessageBit(t *testing.T) {
	c, v, msg := newCommittedPair(t, 42) // 42 = 101010b
	vPrime := c.Open()

	got, err := v.Open(vPrime)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(42), got)

	tamperedS := make([]bool, len(msg.S))
	copy(tamperedS, msg.S)
	tamperedS[0] = !tamperedS[0] // S[0] is consumed last, so this flips bit 0 (the LSB) of m

	tamperedMsg := *msg
	tamperedMsg.S = tamperedS

	v2 := New(testParams())
	require.NoError(t, v2.Receive(c.BroadcastN(), &tamperedMsg))

	got2, err := v2.Open(vPrime)
	require.NoError(t, err, "tail check does not depend on S, so the opening still verifies")

	flipped := new(big.Int).Xor(got, got2)
	require.Equal(t, 1, flipped.BitLen(), "exactly one bit should differ")
	assert.True(t, flipped.Bit(0) == 1, "the targeted bit should be the LSB")
}

func TestForceOpenRecoversMessage(t *testing.T) {
	for _, m := range []int64{1, 2, 42, 255} {
		c, v, _ := newCommittedPair(t, m)
		_ = c

		got, err := v.ForceOpen()
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(m), got)
	}
}
