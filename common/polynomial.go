package common

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	ErrNoPoints   = errors.New("no points to interpolate")
	ErrDuplicateX = errors.New("duplicate x coordinate")
)

// Represents a polynomial with rational coefficients.
//
// A polynomial of the form a_0 + a_1 x + a_2 x^2 + ... + a_n x^n will be
// represented as [a_0, a_1, ..., a_n] and its degree will be n, which is the
// length of the array minus 1.
type Polynomial struct {
	Coefficients []*big.Rat
}

// Creates a new polynomial with the given coefficients.
func NewPolynomial(coeff []*big.Rat) *Polynomial {
	newPoly := &Polynomial{
		Coefficients: coeff,
	}
	newPoly.Normalize()
	return newPoly
}

// Returns the degree of a polynomial.
func (p *Polynomial) Degree() int {
	return len(p.Coefficients) - 1
}

func (p *Polynomial) Equal(q *Polynomial) bool {
	p.Normalize()
	q.Normalize()

	if p.Degree() != q.Degree() {
		return false
	}

	for i, pCoeff := range p.Coefficients {
		if pCoeff.Cmp(q.Coefficients[i]) != 0 {
			return false
		}
	}

	return true
}

// Removes the coefficients that are zero after the most signifficant
// coefficient.
func (p *Polynomial) Normalize() {
	var i int
	for i = len(p.Coefficients) - 1; i >= 0; i-- {
		if p.Coefficients[i].Sign() != 0 {
			break
		}
	}
	if i == -1 {
		p.Coefficients = []*big.Rat{new(big.Rat)}
	}
	if i >= 0 {
		p.Coefficients = p.Coefficients[:i+1]
	}
}

// Returns the multiplication of the polynomial p and the polynomial q.
func (p *Polynomial) Mul(q *Polynomial) *Polynomial {
	degreeNewPoly := p.Degree() + q.Degree()
	coeffsNewPoly := make([]*big.Rat, degreeNewPoly+1)

	for i := range degreeNewPoly + 1 {
		coeff := new(big.Rat)
		for j := range i + 1 {
			if j > p.Degree() {
				continue
			}
			if i-j > q.Degree() {
				continue
			}
			coeff.Add(coeff, new(big.Rat).Mul(p.Coefficients[j], q.Coefficients[i-j]))
		}
		coeffsNewPoly[i] = coeff
	}

	return NewPolynomial(coeffsNewPoly)
}

// Returns the addition of the polynomial p and the polynomial q.
func (p *Polynomial) Add(q *Polynomial) *Polynomial {
	degreeNewPoly := max(p.Degree(), q.Degree())
	coeffsNewPoly := make([]*big.Rat, degreeNewPoly+1)

	for i := range degreeNewPoly + 1 {
		coeff := new(big.Rat)
		if i <= p.Degree() {
			coeff.Add(coeff, p.Coefficients[i])
		}
		if i <= q.Degree() {
			coeff.Add(coeff, q.Coefficients[i])
		}
		coeffsNewPoly[i] = coeff
	}

	return NewPolynomial(coeffsNewPoly)
}

// Given a polynomial p(x) and a constant c, computes the polynomial c * p(x)
func (p *Polynomial) MulByConst(constant *big.Rat) *Polynomial {
	coeffsNewPoly := make([]*big.Rat, p.Degree()+1)
	for i, coeff := range p.Coefficients {
		coeffsNewPoly[i] = new(big.Rat).Mul(coeff, constant)
	}
	return NewPolynomial(coeffsNewPoly)
}

// Evaluate evaluates the polynomial at the given point using Horner's rule.
func (p *Polynomial) Evaluate(x *big.Rat) *big.Rat {
	result := new(big.Rat)
	for i := len(p.Coefficients) - 1; i >= 0; i-- {
		result.Mul(result, x)
		result.Add(result, p.Coefficients[i])
	}
	return result
}

func (p *Polynomial) String() string {
	terms := make([]string, 0, len(p.Coefficients))
	for i, c := range p.Coefficients {
		if c.Sign() == 0 && len(p.Coefficients) > 1 {
			continue
		}
		switch i {
		case 0:
			terms = append(terms, c.RatString())
		case 1:
			terms = append(terms, c.RatString()+"x")
		default:
			terms = append(terms, fmt.Sprintf("%sx^%d", c.RatString(), i))
		}
	}
	return strings.Join(terms, " + ")
}

// Checks that the points are non-empty and that no two share an x
// coordinate, which would make a Lagrange denominator zero.
func CheckDistinctX(points []Point) error {
	if len(points) == 0 {
		return ErrNoPoints
	}
	seen := make(map[string]struct{}, len(points))
	for i := range points {
		key := points[i].X.String()
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: x=%s", ErrDuplicateX, key)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Computes the Lagrange basis polynomial, that is it computes
// $l_j(x) = \prod_{0 \leq m \leq k, m \neq j} \frac{x - x_m}{x_j - x_m}$
func lagrangeBasis(j int, xAxisValues []*big.Rat) *Polynomial {
	xj := xAxisValues[j]
	lagrangeBasisPoly := NewPolynomial([]*big.Rat{big.NewRat(1, 1)})

	for m, xm := range xAxisValues {
		if m == j {
			continue
		}

		// The linear polynomial (x - xm) / (xj - xm) is
		// (1 / (xj - xm)) x + (-xm / (xj - xm)).
		denomInverted := new(big.Rat).Sub(xj, xm)
		denomInverted.Inv(denomInverted)

		linearPolynomial := NewPolynomial([]*big.Rat{
			new(big.Rat).Mul(new(big.Rat).Neg(xm), denomInverted),
			denomInverted,
		})
		lagrangeBasisPoly = lagrangeBasisPoly.Mul(linearPolynomial)
	}
	return lagrangeBasisPoly
}

// Given points (x_1, y_1), ..., (x_k, y_k), computes the polynomial of degree
// at most k - 1 through them.
func InterpolatePolynomial(points []Point) (*Polynomial, error) {
	if err := CheckDistinctX(points); err != nil {
		return nil, err
	}

	xAxisValues := make([]*big.Rat, len(points))
	for i := range points {
		xAxisValues[i] = new(big.Rat).SetInt(&points[i].X)
	}

	interPolynomial := NewPolynomial([]*big.Rat{new(big.Rat)})
	for j := range points {
		y := new(big.Rat).SetInt(&points[j].Y)
		interPolynomial = interPolynomial.Add(lagrangeBasis(j, xAxisValues).MulByConst(y))
	}
	return interPolynomial, nil
}

// InterpolateRat evaluates at x the unique polynomial of degree at most
// len(points) - 1 through the points, without building its coefficients:
// sum_i y_i * prod_{j != i} (x - x_j) / (x_i - x_j).
func InterpolateRat(points []Point, x *big.Int) (*big.Rat, error) {
	if err := CheckDistinctX(points); err != nil {
		return nil, err
	}

	sum := new(big.Rat)
	numerator := new(big.Int)
	denominator := new(big.Int)
	diff := new(big.Int)
	for i := range points {
		numerator.Set(&points[i].Y)
		denominator.SetInt64(1)
		for j := range points {
			if i == j {
				continue
			}
			numerator.Mul(numerator, diff.Sub(x, &points[j].X))
			denominator.Mul(denominator, diff.Sub(&points[i].X, &points[j].X))
		}
		sum.Add(sum, new(big.Rat).SetFrac(numerator, denominator))
	}
	return sum, nil
}

// Interpolate is InterpolateRat rounded to the nearest integer, halves
// rounded up.
func Interpolate(points []Point, x *big.Int) (*big.Int, error) {
	value, err := InterpolateRat(points, x)
	if err != nil {
		return nil, err
	}
	return RoundRat(value), nil
}

// RoundRat returns floor(r + 1/2).
func RoundRat(r *big.Rat) *big.Int {
	// r + 1/2 = (2a + b) / 2b with b > 0; Int.Div is Euclidean, which is the
	// floor for a positive divisor.
	num := new(big.Int).Lsh(r.Num(), 1)
	num.Add(num, r.Denom())
	den := new(big.Int).Lsh(r.Denom(), 1)
	return num.Div(num, den)
}
