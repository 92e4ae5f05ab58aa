package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantMinor int64
		wantErr   bool
	}{
		{name: "whole major units", input: "50", wantMinor: 5000},
		{name: "two decimal places", input: "50.00", wantMinor: 5000},
		{name: "with cents", input: "12.34", wantMinor: 1234},
		{name: "zero", input: "0", wantMinor: 0},
		{name: "single decimal place", input: "0.5", wantMinor: 50},
		{name: "negative rejected", input: "-1.00", wantErr: true},
		{name: "too much precision rejected", input: "1.001", wantErr: true},
		{name: "not a number rejected", input: "fifty", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantMinor, got.Minor())
		})
	}
}

func TestAmountArithmetic(t *testing.T) {
	a := AmountFromMinor(700)
	b := AmountFromMinor(300)

	assert.Equal(t, int64(1000), a.Add(b).Minor())
	assert.Equal(t, int64(400), a.Sub(b).Minor())

	// subtraction below zero is allowed at the type level
	assert.True(t, b.Sub(a).IsNegative())
	assert.Equal(t, int64(-300), b.Neg().Minor())
}

func TestAmountMajorString(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{minor: 5000, want: "50.00"},
		{minor: 1234, want: "12.34"},
		{minor: 0, want: "0.00"},
		{minor: 5, want: "0.05"},
		{minor: 500000, want: "5000.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AmountFromMinor(tt.minor).MajorString(), "minor=%d", tt.minor)
	}
}
