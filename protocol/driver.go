// Package protocol drives a single timed-commitment session through its
// state machine: Initial -> Committed -> {Opened, ForceOpened}.
//
// Grounded on original_source/src/protocol.rs, whose ProtocolState enum
// and unimplemented commit/verify_round stubs this package fills in with
// the committer and verifier packages.
package protocol

import (
	"math/big"
	"time"

	"github.com/pkg/errors"

	"github.com/topanisto/timed-commitments/committer"
	"github.com/topanisto/timed-commitments/common"
	"github.com/topanisto/timed-commitments/verifier"
)

// State is one stage of a commitment session's lifecycle.
type State int

const (
	// StateInitial is the state before any message has been exchanged.
	StateInitial State = iota
	// StateCommitted is the state once a commitment has been sent and
	// received, and before either opening path has completed.
	StateCommitted
	// StateOpened is a terminal state reached via the cooperative path.
	StateOpened
	// StateForceOpened is a terminal state reached via trial factorization.
	StateForceOpened
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "Initial"
	case StateCommitted:
		return "Committed"
	case StateOpened:
		return "Opened"
	case StateForceOpened:
		return "ForceOpened"
	default:
		return "Unknown"
	}
}

// StateError reports that an operation was attempted from a state that
// does not permit it.
type StateError struct {
	Current State
	Op      string
}

func (e *StateError) Error() string {
	return "protocol: cannot " + e.Op + " from state " + e.Current.String()
}

// Driver owns one Committer/Verifier pair and sequences them through the
// protocol's state machine.
type Driver struct {
	params common.Params

	state State

	committer *committer.Committer
	verifier  *verifier.Verifier
}

// NewDriver constructs a Driver in the Initial state.
func NewDriver(params common.Params) *Driver {
	return &Driver{params: params, state: StateInitial}
}

// State reports the driver's current lifecycle state.
func (d *Driver) State() State {
	return d.state
}

// Commit samples a fresh Committer for m, exchanges the commit message
// with a fresh Verifier, and advances the state to Committed.
func (d *Driver) Commit(m *big.Int) error {
	if d.state != StateInitial {
		return &StateError{Current: d.state, Op: "commit"}
	}

	c, err := committer.New(m, d.params)
	if err != nil {
		return errors.Wrap(err, "protocol: commit failed")
	}

	v := verifier.New(d.params)
	n := c.BroadcastN()
	msg := c.Commit()
	if err := v.Receive(n, msg); err != nil {
		return errors.Wrap(err, "protocol: verifier rejected commitment")
	}

	d.committer = c
	d.verifier = v
	d.state = StateCommitted

	common.Logger.Debugf("protocol: commit complete, state=%s", d.state)
	return nil
}

// RunBindProof runs one full round of the bind-proof Sigma protocol
// (binding setup, challenge draw, response, verification) and reports
// whether the Committer's commitment chain verified as well-formed.
// It does not change the driver's state.
func (d *Driver) RunBindProof() (bool, error) {
	if d.state != StateCommitted {
		return false, &StateError{Current: d.state, Op: "run bind proof"}
	}

	pairs, err := d.committer.BindingSetup()
	if err != nil {
		return false, errors.Wrap(err, "protocol: bind proof setup failed")
	}

	challenges, err := d.verifier.Challenges()
	if err != nil {
		return false, errors.Wrap(err, "protocol: challenge draw failed")
	}

	responses, err := d.committer.ChallengeResponse(challenges)
	if err != nil {
		return false, errors.Wrap(err, "protocol: challenge response failed")
	}

	ok, err := d.verifier.VerifyCommitZKP(pairs, responses)
	if err != nil {
		return false, errors.Wrap(err, "protocol: bind proof verification errored")
	}

	common.Logger.Debugf("protocol: bind proof verified=%v", ok)
	return ok, nil
}

// Open performs the cooperative opening and advances the state to Opened.
func (d *Driver) Open() (*big.Int, error) {
	if d.state != StateCommitted {
		return nil, &StateError{Current: d.state, Op: "open"}
	}

	vPrime := d.committer.Open()
	m, err := d.verifier.Open(vPrime)
	if err != nil {
		return nil, errors.Wrap(err, "protocol: open failed")
	}

	d.state = StateOpened
	return m, nil
}

// ForceOpen recovers m without Committer cooperation and advances the
// state to ForceOpened.
func (d *Driver) ForceOpen() (*big.Int, error) {
	if d.state != StateCommitted {
		return nil, &StateError{Current: d.state, Op: "force-open"}
	}

	m, err := d.verifier.ForceOpen()
	if err != nil {
		return nil, errors.Wrap(err, "protocol: force-open failed")
	}

	d.state = StateForceOpened
	return m, nil
}

// CompareOpenings times the cooperative and forced opening paths against
// the same commitment, without advancing the driver's state machine, and
// returns an error if the two paths recover different messages. It is
// a diagnostic, grounded on verifier.rs's benchmark_opening, which compares
// the two paths outside the normal protocol flow.
func (d *Driver) CompareOpenings() (normal, forced time.Duration, err error) {
	if d.state != StateCommitted {
		return 0, 0, &StateError{Current: d.state, Op: "compare openings"}
	}

	startNormal := time.Now()
	vPrime := d.committer.Open()
	mNormal, err := d.verifier.Open(vPrime)
	normal = time.Since(startNormal)
	if err != nil {
		return normal, 0, errors.Wrap(err, "protocol: normal opening failed")
	}

	startForced := time.Now()
	mForced, err := d.verifier.ForceOpen()
	if err != nil {
		return normal, 0, errors.Wrap(err, "protocol: forced opening failed")
	}
	forced = time.Since(startForced)

	if mNormal.Cmp(mForced) != 0 {
		return normal, forced, errors.New("protocol: normal and forced openings recovered different messages")
	}

	common.Logger.Infof("protocol: normal open took %s, forced open took %s", normal, forced)
	return normal, forced, nil
}
