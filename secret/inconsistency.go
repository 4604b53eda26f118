package secret

import (
	"math/big"

	"github.com/arcana-network/secretrecovery/common"
)

const MaxIncorrectRoots = 3

// FindIncorrect returns, in input order, the x coordinates of the points whose
// y differs from the interpolation of all the other points at that x. At most
// MaxIncorrectRoots values are returned.
//
// The recovered secret is not used by the check; it is accepted so callers can
// pass the outcome of Recover alongside the points.
func FindIncorrect(points []common.Point, _ *big.Int) ([]*big.Int, error) {
	incorrect := make([]*big.Int, 0, MaxIncorrectRoots)
	if len(points) < 2 {
		return incorrect, nil
	}
	if err := common.CheckDistinctX(points); err != nil {
		return nil, err
	}

	others := make([]common.Point, 0, len(points)-1)
	for i := range points {
		others = append(others[:0], points[:i]...)
		others = append(others, points[i+1:]...)

		value, err := common.Interpolate(others, &points[i].X)
		if err != nil {
			return nil, err
		}
		if value.Cmp(&points[i].Y) != 0 {
			incorrect = append(incorrect, new(big.Int).Set(&points[i].X))
			if len(incorrect) == MaxIncorrectRoots {
				break
			}
		}
	}
	return incorrect, nil
}

// OffCurve returns, in input order, the x coordinates of the points that do
// not lie on poly. Unlike FindIncorrect the result is not capped.
func OffCurve(points []common.Point, poly *common.Polynomial) []*big.Int {
	var off []*big.Int
	for i := range points {
		value := poly.Evaluate(new(big.Rat).SetInt(&points[i].X))
		if !value.IsInt() || value.Num().Cmp(&points[i].Y) != 0 {
			off = append(off, new(big.Int).Set(&points[i].X))
		}
	}
	return off
}
