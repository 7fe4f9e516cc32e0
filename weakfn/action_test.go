package weakfn

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"runtime"
	"strings"
	"sync"
	"testing"
)

func TestNewAction_Nil(t *testing.T) {
	_, err := NewAction(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewMethodAction[counter](nil, (*counter).Increment)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	var hits int
	_, err = NewMethodAction(newCounter(&hits), nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAction_Static(t *testing.T) {
	var calls int
	action, err := NewAction(func() { calls++ })
	require.NoError(t, err)

	assert.True(t, action.IsStatic())
	assert.True(t, action.IsAlive())
	assert.Nil(t, action.Target())
	for i := 0; i < 3; i++ {
		runtime.GC()
		action.Execute()
	}
	assert.True(t, action.IsAlive(), "A static action with no owner should stay alive indefinitely")
	assert.Equal(t, 3, calls)
}

func TestAction_StaticWithOwner(t *testing.T) {
	var calls int
	owner := &ownerObj{name: "view"}
	action, err := NewAction(func() { calls++ }, WithOwner(owner))
	require.NoError(t, err)

	assert.True(t, action.IsStatic())
	assert.True(t, action.IsAlive())
	assert.Same(t, owner, action.Target())
	action.Execute()
	assert.Equal(t, 1, calls)

	owner = nil
	collect(t, action.IsAlive)
	assert.Nil(t, action.Target())
	action.Execute()
	assert.Equal(t, 1, calls, "Should not execute once the owner has been collected")
}

func TestAction_NilOwnerIgnored(t *testing.T) {
	action, err := NewAction(func() {}, WithOwner[ownerObj](nil), nil)
	require.NoError(t, err)
	assert.True(t, action.IsAlive())
}

func TestAction_Method(t *testing.T) {
	var hits int
	c := newCounter(&hits)
	action, err := NewMethodAction(c, (*counter).Increment)
	require.NoError(t, err)

	assert.False(t, action.IsStatic())
	assert.True(t, action.IsAlive())
	assert.Same(t, c, action.Target())
	assert.True(t, strings.HasSuffix(action.MethodName(), "(*counter).Increment"), "Unexpected method name '%s'", action.MethodName())

	for i := 0; i < 3; i++ {
		action.Execute()
	}
	assert.Equal(t, 3, c.count)
	assert.Equal(t, 3, hits)

	c = nil
	collect(t, action.IsAlive)
	assert.Nil(t, action.Target())
	assert.NotPanics(t, action.Execute)
	assert.Equal(t, 3, hits, "Should not execute once the receiver has been collected")
}

func TestAction_MethodWithOwner(t *testing.T) {
	var hits int
	c := newCounter(&hits)
	owner := &ownerObj{name: "view"}
	action, err := NewMethodAction(c, (*counter).Increment, WithOwner(owner))
	require.NoError(t, err)

	assert.Same(t, owner, action.Target())
	action.Execute()
	assert.Equal(t, 1, hits)

	owner = nil
	collect(t, action.IsAlive)
	action.Execute()
	assert.Equal(t, 1, hits, "Should not execute once the owner has been collected")
	runtime.KeepAlive(c)
}

func TestAction_MarkForDeletion(t *testing.T) {
	var hits int
	c := newCounter(&hits)
	action, err := NewMethodAction(c, (*counter).Increment)
	require.NoError(t, err)

	action.MarkForDeletion()
	assert.False(t, action.IsAlive(), "Should be dead even though the receiver is reachable")
	assert.False(t, action.IsStatic())
	assert.Empty(t, action.MethodName())
	assert.Nil(t, action.Target())
	action.Execute()
	assert.Equal(t, 0, c.count)

	action.MarkForDeletion()
	assert.False(t, action.IsAlive())

	var calls int
	static, err := NewAction(func() { calls++ })
	require.NoError(t, err)
	static.MarkForDeletion()
	assert.False(t, static.IsAlive())
	static.Execute()
	assert.Equal(t, 0, calls)
}

func TestAction_ConcurrentMarkForDeletion(t *testing.T) {
	var (
		mux   sync.Mutex
		calls int
		wg    sync.WaitGroup
	)
	action, err := NewAction(func() {
		mux.Lock()
		defer mux.Unlock()
		calls++
	})
	require.NoError(t, err)

	const n = 50
	wg.Add(n + 1)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			action.Execute()
			_ = action.IsAlive()
		}()
	}
	go func() {
		defer wg.Done()
		action.MarkForDeletion()
	}()
	wg.Wait()

	assert.False(t, action.IsAlive())
	assert.LessOrEqual(t, calls, n)
	before := calls
	action.Execute()
	assert.Equal(t, before, calls)
}
