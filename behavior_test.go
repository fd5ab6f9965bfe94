package sweepfsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/comalice/sweepfsm"
)

func TestBehavior_StringAndParse(t *testing.T) {
	for _, b := range Behaviors {
		got, err := ParseBehavior(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}

	got, err := ParseBehavior("spiralsweep")
	require.NoError(t, err)
	assert.Equal(t, SpiralSweep, got)

	_, err = ParseBehavior("Dance")
	assert.Error(t, err)
}

func TestBehavior_Invalid(t *testing.T) {
	var zero Behavior
	assert.False(t, zero.Valid())
	assert.Equal(t, "Behavior(0)", zero.String())

	_, err := zero.MarshalText()
	assert.Error(t, err)
}

func TestBehavior_Text(t *testing.T) {
	text, err := Rotate.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Rotate", string(text))

	var b Behavior
	require.NoError(t, b.UnmarshalText([]byte("Retreat")))
	assert.Equal(t, Retreat, b)
}

func TestEdges_CoverEveryBehavior(t *testing.T) {
	edges := Edges(DefaultConfig())
	from := map[Behavior]int{}
	for _, e := range edges {
		from[e.From]++
	}
	assert.Equal(t, map[Behavior]int{
		ForwardSweep: 2,
		SpiralSweep:  2,
		Retreat:      1,
		Rotate:       1,
	}, from)
	assert.Equal(t, "elapsed > 3s", edges[1].Guard)
}
