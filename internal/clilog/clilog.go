// Package clilog configures logging for the command line tools.
package clilog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing plain messages to stderr.
func New() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
	return log
}
