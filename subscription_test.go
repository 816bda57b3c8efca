package steambridge

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriberSetFanOut(t *testing.T) {
	var set subscriberSet[int]
	a := set.add()
	b := set.add()
	defer a.Close()
	defer b.Close()

	for i := 0; i < 10; i++ {
		set.publish(i)
	}
	for i := 0; i < 10; i++ {
		assert.Equal(t, i, receive(t, a))
		assert.Equal(t, i, receive(t, b))
	}
}

func TestSubscriberSetSlowReceiverDoesNotBlockPublisher(t *testing.T) {
	var set subscriberSet[int]
	slow := set.add()
	defer slow.Close()

	// nobody reads while publishing
	for i := 0; i < 10000; i++ {
		set.publish(i)
	}
	for i := 0; i < 10000; i++ {
		require.Equal(t, i, receive(t, slow))
	}
}

func TestSubscriberSetRemoveOnClose(t *testing.T) {
	var set subscriberSet[string]
	a := set.add()
	b := set.add()
	defer b.Close()

	a.Close()
	assert.Equal(t, 1, set.len())
	waitClosed(t, a)

	set.publish("hello")
	assert.Equal(t, "hello", receive(t, b))
}

func TestSubscriberSetCloseAll(t *testing.T) {
	var set subscriberSet[int]
	subs := []*Subscription[int]{set.add(), set.add(), set.add()}
	set.publish(1)

	set.closeAll()
	assert.Equal(t, 0, set.len())
	for _, s := range subs {
		waitClosed(t, s)
	}
}

func TestSubscriptionAddedAfterCloseAll(t *testing.T) {
	var set subscriberSet[int]
	set.closeAll()
	s := set.add()

	assert.Equal(t, 0, set.len())
	waitClosed(t, s)
}

func TestSubscriberSetAddRacingCloseAll(t *testing.T) {
	for round := 0; round < 50; round++ {
		var set subscriberSet[int]
		subs := make(chan *Subscription[int], 64)

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 8; i++ {
					subs <- set.add()
				}
			}()
		}
		set.closeAll()
		wg.Wait()
		close(subs)

		for s := range subs {
			waitClosed(t, s)
		}
		assert.Equal(t, 0, set.len())
	}
}

func TestSubscriberSetConcurrentPublish(t *testing.T) {
	var set subscriberSet[int]
	s := set.add()
	defer s.Close()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				set.publish(i)
			}
		}()
	}
	wg.Wait()

	sum := 0
	for i := 0; i < 1000; i++ {
		sum += receive(t, s)
	}
	assert.Equal(t, 4*(249*250/2), sum)
}
