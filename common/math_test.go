package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSign(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{-7, -1},
		{0, 0},
		{12, 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Sign(c.in), "Sign(%d)", c.in)
	}
}

func TestAssert(t *testing.T) {
	assert.NotPanics(t, func() { Assert(true, "never") })
	if !AssertionsEnabled() {
		t.Skip("assertions compiled out")
	}
	assert.PanicsWithValue(t, "assertion failed: hazard 3 ticked after death", func() {
		Assert(false, "hazard %d ticked after death", 3)
	})
}
