package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.ShowError("Photo not found")
	w.ShowInfo("Logged out.")
	assert.Equal(t, "✗ Photo not found\n• Logged out.\n", buf.String())
}

func TestLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewLog(zap.New(core))
	l.ShowError("bad")
	l.ShowInfo("good")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "bad", entries[0].Message)
		assert.Equal(t, zap.WarnLevel, entries[0].Level)
		assert.Equal(t, "notify", entries[0].LoggerName)
	}
	Nop{}.ShowError("ignored")
}
