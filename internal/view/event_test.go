package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventPropagation(t *testing.T) {
	ev := NewClick(TargetLike)
	assert.Equal(t, TargetLike, ev.Target)
	assert.False(t, ev.Stopped())
	ev.StopPropagation()
	assert.True(t, ev.Stopped())
}
