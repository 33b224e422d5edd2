package libemit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewEvent(t *testing.T) {
	before := time.Now()
	evt := NewEvent("save")

	assert.Equal(t, "save", evt.Key())
	assert.NotEmpty(t, evt.ID())
	assert.False(t, evt.Time().Before(before))
	assert.False(t, evt.IsStopped())
	assert.Nil(t, evt.State())
	assert.NoError(t, evt.Err())
	assert.Empty(t, evt.AllData())
	assert.Empty(t, evt.CallStack())
}

func TestEventIndexStopsWithEvent(t *testing.T) {
	evt := NewEvent("save")

	evt.next()
	evt.next()
	assert.Equal(t, 2, evt.Index())

	evt.Stop()
	evt.next()
	assert.Equal(t, 2, evt.Index())
}

func TestEventData(t *testing.T) {
	evt := NewEvent("save")

	_, ok := evt.Data("missing")
	assert.False(t, ok)

	evt.SetData("a", 1).SetData("b", "two")

	v, ok := evt.Data("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	all := evt.AllData()
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, all)

	all["c"] = 3
	_, ok = evt.Data("c")
	assert.False(t, ok, "AllData returns a copy")
}

func TestEventZeroValueData(t *testing.T) {
	evt := &Event{}

	evt.SetData("a", 1)

	v, ok := evt.Data("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestEventCallStack(t *testing.T) {
	stack := []CallStackEntry{{Caller: "pkg.handler", Priority: 100}}

	evt := NewEvent("save").SetCallStack(stack)

	assert.Equal(t, stack, evt.CallStack())
}
