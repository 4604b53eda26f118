package secret

import (
	"errors"
	"fmt"
	"math/big"

	log "github.com/sirupsen/logrus"

	"github.com/arcana-network/secretrecovery/common"
	"github.com/arcana-network/secretrecovery/telemetry"
)

const DefaultMaxSubsets = 1 << 20

var (
	ErrInvalidThreshold = errors.New("invalid threshold")
	ErrTooManySubsets   = errors.New("too many subsets to enumerate")
)

// Outcome of a majority vote over every k-subset of the points.
type Recovery struct {
	Secret *big.Int
	// Number of subsets that interpolated to Secret.
	Votes int
	// Number of subsets evaluated.
	Subsets int
	// Number of distinct candidate secrets seen.
	Candidates int
	// Polynomial through the first subset that produced Secret.
	Polynomial *common.Polynomial
}

// Unanimous reports whether every subset agreed on the secret.
func (r *Recovery) Unanimous() bool {
	return r.Subsets > 0 && r.Votes == r.Subsets
}

type Recoverer struct {
	// Upper bound on C(n, k). Zero means DefaultMaxSubsets.
	MaxSubsets int
}

func NewRecoverer(maxSubsets int) *Recoverer {
	return &Recoverer{MaxSubsets: maxSubsets}
}

// Recover runs the default recoverer.
func Recover(points []common.Point, k int) (*Recovery, error) {
	return NewRecoverer(DefaultMaxSubsets).Recover(points, k)
}

// Recover interpolates every k-subset of points at x = 0 and returns the
// value produced most often. On a tie the value that first reached the
// winning count, in enumeration order, is kept.
func (r *Recoverer) Recover(points []common.Point, k int) (*Recovery, error) {
	if k < 1 || k > len(points) {
		return nil, fmt.Errorf("%w: k=%d with %d points", ErrInvalidThreshold, k, len(points))
	}
	if err := common.CheckDistinctX(points); err != nil {
		return nil, err
	}

	limit := r.MaxSubsets
	if limit <= 0 {
		limit = DefaultMaxSubsets
	}
	if total := common.CombinationCount(len(points), k); total > limit {
		return nil, fmt.Errorf("%w: C(%d,%d) exceeds %d", ErrTooManySubsets, len(points), k, limit)
	}

	zero := new(big.Int)
	counts := make(map[string]int)
	firstSubset := make(map[string][]common.Point)
	var (
		maxCount   int
		maxElement *big.Int
		subsets    int
	)
	for subset := range common.Combinations(points, k) {
		candidate, err := common.Interpolate(subset, zero)
		if err != nil {
			return nil, err
		}
		subsets++
		telemetry.IncrementSubsetsEvaluated()

		key := candidate.String()
		counts[key]++
		if _, ok := firstSubset[key]; !ok {
			firstSubset[key] = subset
		}
		if counts[key] > maxCount {
			maxCount = counts[key]
			maxElement = candidate
		}
	}

	poly, err := common.InterpolatePolynomial(firstSubset[maxElement.String()])
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"Secret":     maxElement.String(),
		"Votes":      maxCount,
		"Subsets":    subsets,
		"Candidates": len(counts),
	}).Debug("secret: recover")

	return &Recovery{
		Secret:     maxElement,
		Votes:      maxCount,
		Subsets:    subsets,
		Candidates: len(counts),
		Polynomial: poly,
	}, nil
}
