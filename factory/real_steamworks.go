//go:build steamworks

package factory

import (
	"github.com/opd-ai/steambridge/interfaces"
	"github.com/opd-ai/steambridge/real"
)

func newRealPlatform(config *interfaces.PlatformConfig) (interfaces.IPlatform, error) {
	return real.NewSteamworksPlatform(config), nil
}
