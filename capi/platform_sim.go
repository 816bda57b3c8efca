//go:build !steamworks

package main

import "C"

import (
	"github.com/opd-ai/steambridge"
	"github.com/opd-ai/steambridge/friend"
	"github.com/opd-ai/steambridge/steamid"
	sim "github.com/opd-ai/steambridge/testing"
	"github.com/sirupsen/logrus"
)

// simPlatform is the platform of the current client in builds without the
// steamworks tag. Guarded by clientMu.
var simPlatform *sim.SimulatedPlatform

func newOptions() *steambridge.Options {
	opts := steambridge.NewOptions()
	opts.Config.UseSimulation = true
	simPlatform = sim.NewSimulatedPlatform(opts.Config)
	opts.Platform = simPlatform
	return opts
}

func currentSimulation() *sim.SimulatedPlatform {
	clientMu.RLock()
	defer clientMu.RUnlock()
	if client == nil {
		return nil
	}
	return simPlatform
}

// steambridge_sim_post_persona_state_change queues a persona-state-change
// that is delivered by the next steambridge_run_callbacks.
//
//export steambridge_sim_post_persona_state_change
func steambridge_sim_post_persona_state_change(steamID uint64, flags uint32) bool {
	s := currentSimulation()
	if s == nil {
		return false
	}
	if _, err := s.PostPersonaStateChange(steamid.ID(steamID), friend.PersonaChange(flags)); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "steambridge_sim_post_persona_state_change",
			"error":    err.Error(),
		}).Warn("Failed to post notification")
		return false
	}
	return true
}

//export steambridge_sim_post_steam_shutdown
func steambridge_sim_post_steam_shutdown() bool {
	s := currentSimulation()
	if s == nil {
		return false
	}
	if _, err := s.PostSteamShutdown(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "steambridge_sim_post_steam_shutdown",
			"error":    err.Error(),
		}).Warn("Failed to post notification")
		return false
	}
	return true
}
