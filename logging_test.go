package kinetik

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevelGate(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLoggerTo(&out, &errOut, "sim", false)

	assert.False(t, l.DebugEnabled())
	l.Debugf("suppressed %d", 1)
	assert.Empty(t, out.String())

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("visible %d", 2)
	assert.Contains(t, out.String(), "[sim] DEBUG: visible 2")
}

func TestLoggerStreamSplit(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLoggerTo(&out, &errOut, "", false)

	l.Infof("hello")
	l.Warnf("uh oh")
	l.Errorf("bad")

	assert.Contains(t, out.String(), "INFO: hello")
	assert.NotContains(t, out.String(), "uh oh")
	assert.Contains(t, errOut.String(), "WARN: uh oh")
	assert.Contains(t, errOut.String(), "ERROR: bad")
}

func TestAppLoggerFallsBackToNop(t *testing.T) {
	app := NewAppBuilder().Build()
	l := app.Logger()
	assert.False(t, l.DebugEnabled())
	l.Infof("goes nowhere") // must not panic without a logger resource
}
