package common

import "github.com/sirupsen/logrus"

// Logger is the package-level structured logger shared by the committer,
// verifier, and protocol driver. Mirrors the teacher's `common.Logger`,
// used there to trace round timings and failures (see
// ecdsa/keygen/round_1.go's Debugf/Errorf calls) without threading a
// logger through every constructor.
var Logger = logrus.New()

func init() {
	Logger.SetLevel(logrus.InfoLevel)
}

// SetLogLevel adjusts the package logger's verbosity, e.g. logrus.DebugLevel
// to trace prime generation and bind-proof rounds.
func SetLogLevel(level logrus.Level) {
	Logger.SetLevel(level)
}
