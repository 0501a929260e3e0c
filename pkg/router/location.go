package router

import "sync"

// Location is a hash-change event source. It implements
// fiber.Source[string]: components subscribe with fiber.UseSource and
// re-render on every hash change. In a browser host the bridge feeds
// Set from the native hashchange event; headless hosts call Set
// directly.
type Location struct {
	mu     sync.RWMutex
	hash   string
	subs   map[uint64]func(string)
	nextID uint64
}

// NewLocation creates a Location at the given initial hash.
func NewLocation(initial string) *Location {
	return &Location{
		hash: initial,
		subs: make(map[uint64]func(string)),
	}
}

// Current returns the present hash. Implements fiber.Source.
func (l *Location) Current() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.hash
}

// Subscribe registers fn for future hash values and returns a cancel
// function. Implements fiber.Source.
func (l *Location) Subscribe(fn func(string)) func() {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.subs[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

// Set updates the hash and notifies subscribers. Setting the current
// value is a no-op.
func (l *Location) Set(hash string) {
	l.mu.Lock()
	if l.hash == hash {
		l.mu.Unlock()
		return
	}
	l.hash = hash
	subs := make([]func(string), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn(hash)
	}
}

// Navigate is an alias for Set, matching browser navigation intent.
func (l *Location) Navigate(hash string) {
	l.Set(hash)
}
