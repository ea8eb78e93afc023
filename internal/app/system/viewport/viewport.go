// Package viewport delivers a page's scroll offsets to the listeners that
// the page has subscribed.
//
// A Source is owned by one mounted page and used from that page's event
// loop only; it has no locking.
package viewport

// Listener receives a vertical scroll offset.
type Listener func(scrollY float64)

// Source fans scroll offsets out to subscribed listeners.
type Source struct {
	next      int
	listeners map[int]Listener
	order     []int
}

// NewSource returns a Source with no listeners.
func NewSource() *Source {
	return &Source{listeners: make(map[int]Listener)}
}

// Subscribe registers l and returns the function that removes it. The
// returned function may be called any number of times.
func (s *Source) Subscribe(l Listener) (release func()) {
	id := s.next
	s.next++
	s.listeners[id] = l
	s.order = append(s.order, id)

	released := false
	return func() {
		if released {
			return
		}
		released = true
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Scroll delivers scrollY to every listener, in subscription order.
// Listeners may release themselves or others while being called; a listener
// released mid-delivery is not called, and one subscribed mid-delivery
// first hears the next offset.
func (s *Source) Scroll(scrollY float64) {
	for _, id := range append([]int(nil), s.order...) {
		if l, ok := s.listeners[id]; ok {
			l(scrollY)
		}
	}
}

// Listeners reports how many listeners are subscribed.
func (s *Source) Listeners() int {
	return len(s.listeners)
}
