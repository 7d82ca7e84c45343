package cart

import "sync"

// countNotifier fans out cart item counts to subscribers. UI badges learn
// of cart changes only through this channel.
type countNotifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(count int)
}

func newCountNotifier() *countNotifier {
	return &countNotifier{subs: map[int]func(int){}}
}

// subscribe registers fn and returns its removal func.
func (n *countNotifier) subscribe(fn func(count int)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *countNotifier) notify(count int) {
	n.mu.Lock()
	fns := make([]func(int), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(count)
	}
}
