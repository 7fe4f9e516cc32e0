package weakfn

import (
	"github.com/stretchr/testify/require"
	"runtime"
	"testing"
)

// counter is never tiny-allocated, since it contains pointers, so it can be collected on its own.
type counter struct {
	name  string
	count int
	hits  *int
}

func newCounter(hits *int) *counter {
	return &counter{name: "counter", hits: hits}
}

func (c *counter) Increment() {
	c.count++
	*c.hits++
}

func (c *counter) Count() int {
	return c.count
}

func (c *counter) Add(n int) int {
	c.count += n
	*c.hits++
	return c.count
}

type ownerObj struct {
	name string
}

// collect runs the garbage collector until alive reports false, failing the test if that never happens.
func collect(t *testing.T, alive func() bool) {
	t.Helper()
	for i := 0; i < 10 && alive(); i++ {
		runtime.GC()
	}
	require.False(t, alive(), "Object should have been collected")
}
