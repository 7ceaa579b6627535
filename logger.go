package midi

import "go.uber.org/zap"

var decodeLog = zap.NewNop()

// EnableDebugLogging routes internal decode tracing to l. Intended for
// diagnosing malformed files; decoding itself never depends on it.
func EnableDebugLogging(l *zap.Logger) {
	decodeLog = l
}
