package common

import (
	"fmt"
	"math/big"
	"os"
	"strings"
)

// A sample of the hidden polynomial. X comes from the test case key and Y
// from the decoded value.
type Point struct {
	X big.Int
	Y big.Int
}

func NewPoint(x, y *big.Int) Point {
	var p Point
	p.X.Set(x)
	p.Y.Set(y)
	return p
}

func NewPointInt64(x, y int64) Point {
	return NewPoint(big.NewInt(x), big.NewInt(y))
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", p.X.String(), p.Y.String())
}

// Returns the X coordinates of the points, in order.
func XValues(points []Point) []*big.Int {
	xs := make([]*big.Int, len(points))
	for i := range points {
		xs[i] = new(big.Int).Set(&points[i].X)
	}
	return xs
}

// Joins big integers with the given separator.
func JoinInts(values []*big.Int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, sep)
}

func DoesFileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return false
		} else if os.IsPermission(err) {
			return false
		} else {
			return true
		}
	}
	return true
}

func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
