package config

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestCreateLogger(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		quiet bool
	}{
		{"default", false, false},
		{"debug", true, false},
		{"quiet", false, true},
		{"debug wins over quiet", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, CreateLogger(tt.debug, tt.quiet))
		})
	}
}

func TestCreateLogger_WritesToStderr(t *testing.T) {
	stdout, stderr := os.Stdout, os.Stderr
	t.Cleanup(func() {
		os.Stdout = stdout
		os.Stderr = stderr
	})

	outReader, outWriter, err := os.Pipe()
	assert.NoError(t, err)
	errReader, errWriter, err := os.Pipe()
	assert.NoError(t, err)
	os.Stdout = outWriter
	os.Stderr = errWriter

	logger := CreateLogger(true, false)
	logger.Info("Verification successful")
	logger.Debug("Read input byte")

	os.Stdout = stdout
	os.Stderr = stderr
	assert.NoError(t, outWriter.Close())
	assert.NoError(t, errWriter.Close())

	out, err := io.ReadAll(outReader)
	assert.NoError(t, err)
	logged, err := io.ReadAll(errReader)
	assert.NoError(t, err)

	assert.Equal(t, "", string(out), "log output must not reach standard output")
	assert.True(t, strings.Contains(string(logged), "Verification successful"))
	assert.True(t, strings.Contains(string(logged), "Read input byte"))
}
