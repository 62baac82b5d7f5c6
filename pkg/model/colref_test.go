package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumnRef(t *testing.T) {
	cases := []struct {
		ref  string
		want int
	}{
		{"A", 0},
		{"B", 1},
		{"Z", 25},
		{"AA", 26},
		{"AC", 28},
		{"AJ", 35},
		{"AR", 43},
		{"BA", 52},
		{"a", 0},
		{" v ", 21},
	}

	for _, tc := range cases {
		got, err := ParseColumnRef(tc.ref)
		require.NoError(t, err, "ref %q", tc.ref)
		assert.Equal(t, tc.want, got, "ref %q", tc.ref)
	}
}

func TestParseColumnRefInvalid(t *testing.T) {
	for _, ref := range []string{"", "1", "A1", "A-B", "é"} {
		_, err := ParseColumnRef(ref)
		assert.Error(t, err, "ref %q", ref)
	}
}

func TestFormatColumnRef(t *testing.T) {
	cases := []struct {
		idx  int
		want string
	}{
		{0, "A"},
		{25, "Z"},
		{26, "AA"},
		{28, "AC"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatColumnRef(tc.idx), "idx %d", tc.idx)
	}
}

func TestColumnRefRoundTrip(t *testing.T) {
	for idx := 0; idx < 1000; idx++ {
		got, err := ParseColumnRef(FormatColumnRef(idx))
		require.NoError(t, err)
		assert.Equal(t, idx, got)
	}
}
