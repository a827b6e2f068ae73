package log_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"espedit/internal/log"
)

func TestLogWithFields(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)

	log.LogWithFields(log.F("path", "match/base.yml"), log.F("state", "dirty")).Info("Document saved")

	out := buf.String()
	assert.Contains(t, out, "Document saved")
	assert.Contains(t, out, "match/base.yml")
	assert.Contains(t, out, "dirty")
}

func TestDebugLevelGate(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)

	log.SetDebug(false)
	log.Debug("hidden detail")
	assert.NotContains(t, buf.String(), "hidden detail")

	log.SetDebug(true)
	defer log.SetDebug(false)
	log.Debugf("visible %s", "detail")
	assert.Contains(t, buf.String(), "visible detail")
}
