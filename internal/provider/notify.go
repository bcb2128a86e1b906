package provider

import (
	"sync"
)

// subscriptionBuffer bounds how many undelivered signals a subscriber can
// have pending. Extra signals are dropped; a re-query after the first
// signal observes the same state anyway.
const subscriptionBuffer = 4

// Notifier broadcasts change signals keyed by resource. Subscribing to an
// item delivers signals for that item; subscribing to the collection
// delivers signals for the collection and every item in it. Signals carry
// no payload, only the resource that changed.
type Notifier struct {
	mu   sync.RWMutex
	subs map[chan Resource]Resource
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		subs: make(map[chan Resource]Resource),
	}
}

// Subscribe registers interest in res. The returned channel receives the
// changed resource after each relevant mutation. Callers must Unsubscribe
// when done.
func (n *Notifier) Subscribe(res Resource) <-chan Resource {
	ch := make(chan Resource, subscriptionBuffer)

	n.mu.Lock()
	n.subs[ch] = res
	n.mu.Unlock()

	return ch
}

// Unsubscribe removes a channel returned by Subscribe and closes it.
func (n *Notifier) Unsubscribe(ch <-chan Resource) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for sub := range n.subs {
		if sub == ch {
			delete(n.subs, sub)
			close(sub)
			return
		}
	}
}

// Notify broadcasts that res changed. Delivery is fire-and-forget: sends
// never block, so a slow or abandoned subscriber cannot stall the mutation
// that triggered the signal.
func (n *Notifier) Notify(res Resource) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch, watched := range n.subs {
		if !covers(watched, res) {
			continue
		}
		select {
		case ch <- res:
		default:
		}
	}
}

// covers reports whether a subscription on watched should see a change to
// changed. A collection subscription sees every change under it; an item
// subscription sees only its own item and the collection as a whole.
func covers(watched, changed Resource) bool {
	if watched == changed {
		return true
	}
	if watched.Kind == KindCollection && changed.Kind == KindItem {
		return true
	}
	if watched.Kind == KindItem && changed.Kind == KindCollection {
		return true
	}
	return false
}
