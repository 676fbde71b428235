package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFireReachesAllListeners(t *testing.T) {
	defer Flush()

	var got []interface{}
	Listen("order.status_changed", func(p interface{}) { got = append(got, p) })
	Listen("order.status_changed", func(p interface{}) { got = append(got, p) })

	Fire("order.status_changed", 42)

	assert.Equal(t, []interface{}{42, 42}, got)
}

func TestFireWithoutListenersIsNoOp(t *testing.T) {
	defer Flush()

	assert.NotPanics(t, func() { Fire("nobody.listens", nil) })
}

func TestFlushRemovesListeners(t *testing.T) {
	called := false
	Listen("user.registered", func(p interface{}) { called = true })
	Flush()

	Fire("user.registered", nil)
	assert.False(t, called)
}
