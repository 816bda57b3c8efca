package steambridge

import (
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// safeCall runs fn and logs a panic instead of propagating it. It reports
// whether fn returned normally.
func safeCall(instance uuid.UUID, context string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"function": context,
				"instance": instance.String(),
				"panic":    r,
				"stack":    string(debug.Stack()),
			}).Error("Recovered from panic")
			ok = false
		}
	}()
	fn()
	return true
}
