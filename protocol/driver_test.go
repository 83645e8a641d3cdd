package protocol

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topanisto/timed-commitments/common"
)

func testParams() common.Params {
	return common.Params{Bits: 16, B: 30, K: 4, RBits: 16}
}

func TestCommitRejectedOutsideInitial(t *testing.T) {
	d := NewDriver(testParams())
	require.NoError(t, d.Commit(big.NewInt(42)))

	err := d.Commit(big.NewInt(7))
	var stateErr *StateError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, StateCommitted, stateErr.Current)
}

func TestOpenRejectedBeforeCommit(t *testing.T) {
	d := NewDriver(testParams())
	_, err := d.Open()
	var stateErr *StateError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, StateInitial, stateErr.Current)
}

func TestFullSequenceNormalOpen(t *testing.T) {
	d := NewDriver(testParams())
	require.NoError(t, d.Commit(big.NewInt(42)))
	assert.Equal(t, StateCommitted, d.State())

	ok, err := d.RunBindProof()
	require.NoError(t, err)
	assert.True(t, ok)

	m, err := d.Open()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(42), m)
	assert.Equal(t, StateOpened, d.State())
}

func TestFullSequenceForceOpen(t *testing.T) {
	d := NewDriver(testParams())
	require.NoError(t, d.Commit(big.NewInt(255)))

	m, err := d.ForceOpen()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(255), m)
	assert.Equal(t, StateForceOpened, d.State())
}

func TestOpenAfterForceOpenRejected(t *testing.T) {
	d := NewDriver(testParams())
	require.NoError(t, d.Commit(big.NewInt(1)))
	_, err := d.ForceOpen()
	require.NoError(t, err)

	_, err = d.Open()
	var stateErr *StateError
	assert.ErrorAs(t, err, &stateErr)
	assert.Equal(t, StateForceOpened, stateErr.Current)
}

func TestFullSequenceNormalOpenWideMessage(t *testing.T) {
	m := new(big.Int).Lsh(big.NewInt(1), 255) // l = 256, exercises K=8's 2^K == l edge

	d := NewDriver(common.WideParams())
	require.NoError(t, d.Commit(m))

	ok, err := d.RunBindProof()
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := d.Open()
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestFullSequenceForceOpenWideMessage(t *testing.T) {
	m := new(big.Int).Lsh(big.NewInt(1), 255)

	d := NewDriver(common.WideParams())
	require.NoError(t, d.Commit(m))

	got, err := d.ForceOpen()
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestCompareOpenings(t *testing.T) {
	d := NewDriver(testParams())
	require.NoError(t, d.Commit(big.NewInt(2)))

	normal, forced, err := d.CompareOpenings()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, normal.Nanoseconds(), int64(0))
	assert.GreaterOrEqual(t, forced.Nanoseconds(), int64(0))
}
