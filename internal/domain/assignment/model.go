package assignment

import (
	"errors"
	"math/rand/v2"
)

// DefaultMaxAttempts bounds the rejection-sampling loop when the caller
// has no preference.
const DefaultMaxAttempts = 200

// Domain errors.
var (
	ErrInsufficientParticipants = errors.New("at least 2 participants are required")
	ErrNoFeasibleAssignment     = errors.New("no valid assignment found within the attempt limit")
)

// Participant is a pool member eligible for the gift exchange.
// An empty Team means the participant is not grouped and can be paired
// with anyone.
type Participant struct {
	ID   string
	Team string
}

// Edge is a single giver-to-receiver pairing.
// INVARIANT: GiverID != ReceiverID.
type Edge struct {
	GiverID    string
	ReceiverID string
}

// Generate produces a circular gift assignment: every participant gives
// to exactly one other and receives from exactly one other, and no edge
// pairs two participants with the same non-empty team.
//
// The search is rejection sampling: shuffle the pool, read the
// permutation as a cycle (each participant gives to its successor, the
// last wraps to the first), and retry while any adjacent pair shares a
// team. The first clean permutation wins.
//
// PRE: participants hold distinct IDs
// POST: on success the returned edges form one cycle covering every
// participant exactly once as giver and once as receiver; on failure
// the returned slice is nil and the pool is untouched
//
// Fewer than 2 participants fails with ErrInsufficientParticipants
// before any attempt. Exhausting maxAttempts fails with
// ErrNoFeasibleAssignment; the caller decides what to do with any
// previously stored assignment (typically: keep it). Both are expected
// outcomes, not faults. A team covering more than half the pool makes a
// clean cycle impossible, so exhaustion is the correct result there.
func Generate(participants []Participant, maxAttempts int) ([]Edge, error) {
	if len(participants) < 2 {
		return nil, ErrInsufficientParticipants
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	// Shuffle a copy so the caller's slice keeps its order.
	order := make([]Participant, len(participants))
	copy(order, participants)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		rand.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		if cycleIsValid(order) {
			return cycleEdges(order), nil
		}
	}
	return nil, ErrNoFeasibleAssignment
}

// cycleIsValid reports whether reading order as a cycle avoids every
// same-team adjacency. Distinct IDs make self-pairing impossible for
// pools of 2 or more, so only the team constraint needs checking.
func cycleIsValid(order []Participant) bool {
	for i := range order {
		giver := order[i]
		receiver := order[(i+1)%len(order)]
		if giver.Team != "" && giver.Team == receiver.Team {
			return false
		}
	}
	return true
}

// cycleEdges materializes the giver-to-successor edges of an accepted
// permutation, wrapping from the last participant back to the first.
func cycleEdges(order []Participant) []Edge {
	edges := make([]Edge, len(order))
	for i := range order {
		edges[i] = Edge{
			GiverID:    order[i].ID,
			ReceiverID: order[(i+1)%len(order)].ID,
		}
	}
	return edges
}
