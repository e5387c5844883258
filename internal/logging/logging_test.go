package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorMode(t *testing.T) {
	for _, s := range []string{"auto", "always", "never"} {
		m, err := ParseColorMode(s)
		require.NoError(t, err)
		assert.Equal(t, ColorMode(s), m)
	}
	_, err := ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestNew_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Out: &buf, Color: ColorAuto})

	log.WithField("path", "a.png").Info("selected")
	out := buf.String()
	assert.Contains(t, out, "level=info")
	assert.Contains(t, out, `msg=selected`)
	assert.Contains(t, out, "path=a.png")
	assert.NotContains(t, out, "time=")
	assert.NotContains(t, out, "\x1b[")
}

func TestNew_Verbose(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, logrus.InfoLevel, New(Options{Out: &buf}).GetLevel())
	assert.Equal(t, logrus.DebugLevel, New(Options{Out: &buf, Verbose: true}).GetLevel())
}

func TestNew_ForcedColor(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Out: &buf, Color: ColorAlways})
	log.Warn("careful")
	assert.Contains(t, buf.String(), "\x1b[")
}
