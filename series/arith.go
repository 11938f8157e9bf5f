package series

import "github.com/chronolab/tempus/internal/vector"

// The operator methods delegate element-wise arithmetic to the value matrix
// after reconciling lengths: when both operands are series they are first
// trimmed to common length, so the result covers the rows both share. Date
// codes are not matched; use Add for date-matched addition.

func (s *Series) binaryOp(other *Series, op func(a, b *vector.Matrix) *vector.Matrix) (*Series, error) {
	if err := columnCheck(s, other); err != nil {
		return nil, err
	}

	pair := CommonLength(s, other)
	out := pair[0]
	out.Values = op(pair[0].Values, pair[1].Values)

	return out, nil
}

// Plus returns self + other over their common length.
func (s *Series) Plus(other *Series) (*Series, error) {
	return s.binaryOp(other, (*vector.Matrix).Add)
}

// Minus returns self - other over their common length.
func (s *Series) Minus(other *Series) (*Series, error) {
	return s.binaryOp(other, (*vector.Matrix).Sub)
}

// Times returns self * other element-wise over their common length.
func (s *Series) Times(other *Series) (*Series, error) {
	return s.binaryOp(other, (*vector.Matrix).Mul)
}

// Divide returns self / other element-wise over their common length. Zero
// denominators propagate the IEEE-754 result.
func (s *Series) Divide(other *Series) (*Series, error) {
	return s.binaryOp(other, (*vector.Matrix).Div)
}

// Power returns self ** other element-wise over their common length.
func (s *Series) Power(other *Series) (*Series, error) {
	return s.binaryOp(other, (*vector.Matrix).Pow)
}

// PlusScalar returns self + v.
func (s *Series) PlusScalar(v float64) *Series {
	out := s.Clone()
	out.Values = s.Values.AddScalar(v)

	return out
}

// MinusScalar returns self - v.
func (s *Series) MinusScalar(v float64) *Series {
	out := s.Clone()
	out.Values = s.Values.SubScalar(v)

	return out
}

// TimesScalar returns self * v.
func (s *Series) TimesScalar(v float64) *Series {
	out := s.Clone()
	out.Values = s.Values.MulScalar(v)

	return out
}

// DivideScalar returns self / v, unguarded for v == 0.
func (s *Series) DivideScalar(v float64) *Series {
	out := s.Clone()
	out.Values = s.Values.DivScalar(v)

	return out
}

// PowerScalar returns self ** v.
func (s *Series) PowerScalar(v float64) *Series {
	out := s.Clone()
	out.Values = s.Values.PowScalar(v)

	return out
}
