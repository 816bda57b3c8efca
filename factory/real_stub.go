//go:build !steamworks

package factory

import (
	"github.com/opd-ai/steambridge/interfaces"
	"github.com/sirupsen/logrus"
)

func newRealPlatform(config *interfaces.PlatformConfig) (interfaces.IPlatform, error) {
	logrus.WithFields(logrus.Fields{
		"function": "newRealPlatform",
		"app_id":   config.AppID,
	}).Error("Steamworks platform requested but not compiled in")
	return nil, ErrRealUnavailable
}
