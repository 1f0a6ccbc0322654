package wei

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert.Equal(t, int64(0), Parse("").Int64())
	assert.Equal(t, int64(0), Parse("not-a-number").Int64())
	assert.Equal(t, int64(0), Parse("12.5").Int64())
	assert.Equal(t, int64(0), Parse("0x10").Int64())
	assert.Equal(t, int64(42), Parse("42").Int64())
	assert.Equal(t, int64(-7), Parse("-7").Int64())

	big20, _ := new(big.Int).SetString("100000000000000000000", 10)
	assert.Zero(t, Parse("100000000000000000000").Cmp(big20))
}

func TestCmp(t *testing.T) {
	assert.Equal(t, 0, Cmp("100", "100"))
	assert.Equal(t, -1, Cmp("99", "100"))
	assert.Equal(t, 1, Cmp("101", "100"))
	// malformed parses as zero on both sides
	assert.Equal(t, 0, Cmp("junk", ""))
	assert.Equal(t, 1, Cmp("1", "junk"))
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero(""))
	assert.True(t, IsZero("0"))
	assert.True(t, IsZero("garbage"))
	assert.False(t, IsZero("1"))
}

func TestMinIncrement(t *testing.T) {
	cases := []struct {
		current string
		want    string
	}{
		{"100", "102"},
		{"101", "104"},  // ceil(103.02)
		{"1", "2"},      // ceil(1.02)
		{"50", "51"},    // ceil(51.0)
		{"0", "0"},
		{"1000000000000000000", "1020000000000000000"},
		{"100000000000000000000", "102000000000000000000"},
		{"99999999999999999999", "101999999999999999999"}, // ceil(101999999999999999998.98)
	}
	for _, tc := range cases {
		got := MinIncrement(Parse(tc.current))
		assert.Equal(t, tc.want, got.String(), "current=%s", tc.current)
	}
}
