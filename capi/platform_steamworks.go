//go:build steamworks

package main

import "github.com/opd-ai/steambridge"

func newOptions() *steambridge.Options {
	return steambridge.NewOptions()
}
