package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogged checks that a text-format log line with the given level and
// message was written. It hides the handler's quoting of messages that
// contain spaces.
func AssertLogged(t *testing.T, logs, level, msg string) {
	t.Helper()
	for _, line := range strings.Split(logs, "\n") {
		if strings.Contains(line, "level="+level) && strings.Contains(line, msg) {
			return
		}
	}
	require.Failf(t, "log line not found", "no %s line containing %q in:\n%s", level, msg, logs)
}
