package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexible(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{in: "2024-03-01T10:00:00Z", want: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{in: "2024-03-01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, Location)},
		{in: " 2024-03-01 08:30:00 ", want: time.Date(2024, 3, 1, 8, 30, 0, 0, Location)},
		{in: "15/04/2024", want: time.Date(2024, 4, 15, 0, 0, 0, 0, Location)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFlexible(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	_, err := ParseFlexible("yesterday")
	assert.Error(t, err)
}

func TestOrNow(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := func() time.Time { return fixed }

	assert.Equal(t, fixed, OrNow(nil, now))
	zero := time.Time{}
	assert.Equal(t, fixed, OrNow(&zero, now))
	other := fixed.Add(time.Hour)
	assert.Equal(t, other, OrNow(&other, now))
}

func TestSetLocation(t *testing.T) {
	prev := Location
	t.Cleanup(func() { Location = prev })

	require.NoError(t, SetLocation(""))
	assert.Equal(t, prev, Location)
	require.NoError(t, SetLocation("UTC"))
	assert.Equal(t, time.UTC.String(), Location.String())
	assert.Error(t, SetLocation("Mars/Olympus"))
}
