package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewWithOutput(t *testing.T) {
	testCases := []struct {
		name          string
		verbose       bool
		level         string
		expectedLevel logrus.Level
		expectOutput  bool
	}{
		{name: "quiet by default", expectedLevel: logrus.InfoLevel},
		{name: "verbose defaults to debug", verbose: true, expectedLevel: logrus.DebugLevel, expectOutput: true},
		{name: "verbose honours level", verbose: true, level: "warn", expectedLevel: logrus.WarnLevel, expectOutput: true},
		{name: "unknown level falls back to debug", verbose: true, level: "chatty", expectedLevel: logrus.DebugLevel, expectOutput: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithOutput(&buf, tc.verbose, tc.level)
			log.Error("something broke")

			assert.Equal(t, tc.expectedLevel, log.GetLevel())
			if tc.expectOutput {
				assert.Contains(t, buf.String(), "something broke")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
