package main

// #include "steambridge.h"
import "C"

import (
	"sync"

	"github.com/opd-ai/steambridge"
	"github.com/sirupsen/logrus"
)

// This is the main package required for building as c-shared
// It exposes the callback bridge and facet accessors through a flat C API

func main() {} // Required for c-shared build mode

// facetSet holds the facet handles issued for the current client.
type facetSet struct {
	friends       uintptr
	remoteStorage uintptr
	ugc           uintptr
	user          uintptr
	userStats     uintptr
	utils         uintptr
}

var (
	clientMu sync.RWMutex
	client   *steambridge.Client
	facetIDs facetSet

	registrations handleTable[*registration]
	facets        handleTable[any]
)

func currentClient() *steambridge.Client {
	clientMu.RLock()
	defer clientMu.RUnlock()
	return client
}

//export steambridge_init
func steambridge_init() bool {
	clientMu.Lock()
	defer clientMu.Unlock()

	if client != nil {
		logrus.WithFields(logrus.Fields{
			"function": "steambridge_init",
		}).Warn("Already initialized")
		return true
	}

	c, err := steambridge.New(newOptions())
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "steambridge_init",
			"error":    err.Error(),
		}).Error("Failed to initialize")
		return false
	}

	client = c
	facetIDs = facetSet{
		friends:       facets.put(c.Friends()),
		remoteStorage: facets.put(c.RemoteStorage()),
		ugc:           facets.put(c.UGC()),
		user:          facets.put(c.User()),
		userStats:     facets.put(c.UserStats()),
		utils:         facets.put(c.Utils()),
	}
	return true
}

// steambridge_shutdown destroys every outstanding callback handle,
// invalidates facet handles and shuts the platform down.
//
//export steambridge_shutdown
func steambridge_shutdown() {
	clientMu.Lock()
	defer clientMu.Unlock()

	if client == nil {
		return
	}

	released := registrations.drain()
	for _, reg := range released {
		reg.bridge.Close()
	}
	facets.drain()
	facetIDs = facetSet{}

	client.Shutdown()
	client = nil

	logrus.WithFields(logrus.Fields{
		"function":           "steambridge_shutdown",
		"released_callbacks": len(released),
	}).Info("Shut down")
}

//export steambridge_is_initialized
func steambridge_is_initialized() bool {
	return currentClient() != nil
}

// steambridge_run_callbacks pumps the message queue once. Registered C
// callbacks run on the calling thread.
//
//export steambridge_run_callbacks
func steambridge_run_callbacks() {
	if c := currentClient(); c != nil {
		c.RunCallbacks()
	}
}

//export steambridge_iteration_interval
func steambridge_iteration_interval() uint32 {
	c := currentClient()
	if c == nil {
		return uint32(steambridge.DefaultIterationInterval.Milliseconds())
	}
	return uint32(c.IterationInterval().Milliseconds())
}
