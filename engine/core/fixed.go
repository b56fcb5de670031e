package core

import "fmt"

// Fixed is a 16.16 signed fixed-point number used where deterministic
// fractional math matters more than range.
type Fixed int32

const fixedShift = 16
const fixedOne = 1 << fixedShift

func FixedFromInt(i int) Fixed {
	return Fixed(i << fixedShift)
}

func FixedFromFloat(f float64) Fixed {
	return Fixed(f * fixedOne)
}

func (f Fixed) Float() float64 {
	return float64(f) / fixedOne
}

func (f Fixed) Int() int {
	return int(f >> fixedShift)
}

func (f Fixed) Mul(other Fixed) Fixed {
	return Fixed((int64(f) * int64(other)) >> fixedShift)
}

func (f Fixed) Div(other Fixed) Fixed {
	if other == 0 {
		Panicf("fixed-point division by zero")
	}
	return Fixed((int64(f) << fixedShift) / int64(other))
}

func (f Fixed) String() string {
	return fmt.Sprintf("%.5f", f.Float())
}
