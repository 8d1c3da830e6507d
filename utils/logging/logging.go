// Package logging builds the process-wide structured logger.
package logging

import (
	"go.uber.org/zap"
)

// New returns a logger tuned for the runtime environment: JSON output at info
// level in production, console output at debug level elsewhere.
func New(goEnv string) (*zap.Logger, error) {
	if goEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
