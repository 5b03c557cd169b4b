package confirm

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmExecutesExactlyOnce(t *testing.T) {
	m := NewManager()
	key := Key("kick", "target1", "mod1")

	var executions int32
	m.Arm(key, "mod1", func() error {
		atomic.AddInt32(&executions, 1)
		return nil
	}, nil)

	// Mash Confirm from several goroutines at once.
	var wg sync.WaitGroup
	results := make([]Result, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = m.Confirm(key, "mod1")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&executions))

	executed := 0
	for _, r := range results {
		if r == ResultExecuted {
			executed++
		}
	}
	assert.Equal(t, 1, executed)
}

func TestConfirmRejectsOtherUsers(t *testing.T) {
	m := NewManager()
	key := Key("ban", "target1", "mod1")

	executed := false
	m.Arm(key, "mod1", func() error { executed = true; return nil }, nil)

	res, _ := m.Confirm(key, "someone-else")
	assert.Equal(t, ResultWrongUser, res)
	assert.False(t, executed)

	// The action stays armed for the real invoker.
	res, _ = m.Confirm(key, "mod1")
	assert.Equal(t, ResultExecuted, res)
	assert.True(t, executed)
}

func TestCancelPreventsExecution(t *testing.T) {
	m := NewManager()
	key := Key("timeout", "target1", "mod1")

	executed := false
	m.Arm(key, "mod1", func() error { executed = true; return nil }, nil)

	assert.Equal(t, ResultExecuted, m.Cancel(key, "mod1"))
	assert.False(t, executed)

	res, _ := m.Confirm(key, "mod1")
	assert.Equal(t, ResultNotFound, res)
	assert.False(t, executed)
}

func TestExpiryDisarmsAction(t *testing.T) {
	m := NewManagerWithWindow(20 * time.Millisecond)
	key := Key("kick", "target1", "mod1")

	expired := make(chan struct{})
	executed := false
	m.Arm(key, "mod1", func() error { executed = true; return nil }, func() {
		close(expired)
	})

	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("expiry callback never fired")
	}

	res, _ := m.Confirm(key, "mod1")
	assert.Equal(t, ResultNotFound, res)
	assert.False(t, executed)
	assert.Equal(t, 0, m.PendingCount())
}

func TestConfirmSuppressesExpiry(t *testing.T) {
	m := NewManagerWithWindow(30 * time.Millisecond)
	key := Key("warn", "target1", "mod1")

	var expiries int32
	m.Arm(key, "mod1", func() error { return nil }, func() {
		atomic.AddInt32(&expiries, 1)
	})

	res, err := m.Confirm(key, "mod1")
	require.NoError(t, err)
	assert.Equal(t, ResultExecuted, res)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&expiries))
}

func TestRearmReplacesPending(t *testing.T) {
	m := NewManagerWithWindow(20 * time.Millisecond)
	key := Key("ban", "target1", "mod1")

	firstRan, secondRan := false, false
	m.Arm(key, "mod1", func() error { firstRan = true; return nil }, nil)
	m.Arm(key, "mod1", func() error { secondRan = true; return nil }, nil)

	res, err := m.Confirm(key, "mod1")
	require.NoError(t, err)
	assert.Equal(t, ResultExecuted, res)
	assert.False(t, firstRan)
	assert.True(t, secondRan)
}

func TestParseID(t *testing.T) {
	key := Key("kick", "t", "m")

	verb, parsed, ok := ParseID(ConfirmID(key))
	require.True(t, ok)
	assert.Equal(t, "confirm", verb)
	assert.Equal(t, key, parsed)

	verb, parsed, ok = ParseID(CancelID(key))
	require.True(t, ok)
	assert.Equal(t, "cancel", verb)
	assert.Equal(t, key, parsed)

	_, _, ok = ParseID("pag:merch:0:")
	assert.False(t, ok)
	_, _, ok = ParseID("nonsense")
	assert.False(t, ok)
}
