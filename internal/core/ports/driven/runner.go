package driven

import "context"

// CommandRunner executes an external command and returns its stdout.
// Extractors that shell out to tools accept one so tests can substitute it.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
