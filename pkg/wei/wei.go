package wei

import "math/big"

// Amounts are decimal strings of wei. They routinely exceed int64 range,
// so all comparisons and increment math go through math/big.

var (
	factor  = big.NewInt(102)
	divisor = big.NewInt(100)
	round   = big.NewInt(99)
)

// Parse converts a decimal string to a big.Int. Malformed or empty input
// parses as zero.
func Parse(s string) *big.Int {
	if s == "" {
		return new(big.Int)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return new(big.Int)
	}
	return n
}

// Cmp compares two decimal amount strings.
func Cmp(a, b string) int {
	return Parse(a).Cmp(Parse(b))
}

// IsZero reports whether the amount parses as zero.
func IsZero(s string) bool {
	return Parse(s).Sign() == 0
}

// MinIncrement returns the minimum acceptable next bid over current:
// ceil(current * 102 / 100), computed as (current*102 + 99) / 100 in
// integer arithmetic. Bid amounts are large-magnitude currency values;
// floating point would silently mis-round at this scale.
func MinIncrement(current *big.Int) *big.Int {
	n := new(big.Int).Mul(current, factor)
	n.Add(n, round)
	return n.Div(n, divisor)
}
