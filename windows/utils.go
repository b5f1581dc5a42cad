package windows

import (
	"context"
	"strings"
	"time"
)

// createTimeoutContext creates a context with a configurable timeout for Delta Sharing API calls
// timeoutSeconds specifies the timeout duration in seconds (default: 60 seconds if <= 0)
func createTimeoutContext(timeoutSeconds int) (context.Context, context.CancelFunc) {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 60
	}
	return context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
}

// cleanFilename turns a table name into a file name: spaces and dots become
// underscores and anything but letters, digits, '_' and '-' is dropped.
func cleanFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == ' ' || r == '.':
			b.WriteRune('_')
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "export"
	}
	return b.String()
}
