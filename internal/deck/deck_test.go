package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/kicker/internal/randutil"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := New(randutil.New(1))
	require.Equal(t, 52, d.CardsRemaining())

	seen := make(map[Card]bool)
	for {
		c, ok := d.Deal()
		if !ok {
			break
		}
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	d1 := New(randutil.New(42))
	d1.Shuffle()
	d2 := New(randutil.New(42))
	d2.Shuffle()

	for i := 0; i < 52; i++ {
		c1, _ := d1.Deal()
		c2, _ := d2.Deal()
		assert.Equal(t, c1, c2, "card %d", i)
	}

	d3 := New(randutil.New(43))
	d3.Shuffle()
	d4 := New(randutil.New(42))
	d4.Shuffle()
	same := true
	for i := 0; i < 52; i++ {
		c3, _ := d3.Deal()
		c4, _ := d4.Deal()
		if c3 != c4 {
			same = false
		}
	}
	assert.False(t, same, "different seeds produced the same order")
}

func TestDealExhaustion(t *testing.T) {
	d := New(randutil.New(1))
	for i := 0; i < 52; i++ {
		_, ok := d.Deal()
		require.True(t, ok)
	}
	_, ok := d.Deal()
	assert.False(t, ok)
}

func TestStack(t *testing.T) {
	d := New(randutil.New(1))
	d.Shuffle()
	d.Stack(MustParseCard("Kd"), MustParseCard("Ks"), MustParseCard("2h"))

	require.Equal(t, 52, d.CardsRemaining())
	c, _ := d.Deal()
	assert.Equal(t, MustParseCard("Kd"), c)
	c, _ = d.Deal()
	assert.Equal(t, MustParseCard("Ks"), c)
	c, _ = d.Deal()
	assert.Equal(t, MustParseCard("2h"), c)
}

func TestRemove(t *testing.T) {
	d := New(randutil.New(1))
	n := d.Remove(MustParseCard("As"), MustParseCard("As"), MustParseCard("Kh"))
	assert.Equal(t, 2, n)
	assert.Equal(t, 50, d.CardsRemaining())
}
