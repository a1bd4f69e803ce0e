package engine

import "sync"

// HubEvent is implemented by the enumerated event type carried on a hub.
type HubEvent interface {
	IsShutdown() bool
}

// Action maps one incoming event to any number of outgoing events, which
// the hub re-injects at its input.
type Action[E HubEvent] func(E) []E

// queue is an unbounded FIFO channel: sends never block, so actors can
// re-inject events while the hub is mid-broadcast without deadlocking.
type queue[E any] struct {
	in  chan E
	out chan E
}

func newQueue[E any]() *queue[E] {
	q := &queue[E]{in: make(chan E), out: make(chan E)}
	go q.pump()
	return q
}

func (q *queue[E]) pump() {
	var pending []E
	in := q.in
	for in != nil || len(pending) > 0 {
		var out chan E
		var head E
		if len(pending) > 0 {
			out = q.out
			head = pending[0]
		}
		select {
		case e, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			pending = append(pending, e)
		case out <- head:
			pending = pending[1:]
		}
	}
	close(q.out)
}

// Hub is a broadcast bus. Every event sent to its input is copied to every
// registered actor in ingest order; a shutdown event is forwarded and then
// the hub joins all actor goroutines and exits.
type Hub[E HubEvent] struct {
	input   *queue[E]
	outputs []*queue[E]
	wg      sync.WaitGroup
}

func NewHub[E HubEvent]() *Hub[E] {
	return &Hub[E]{input: newQueue[E]()}
}

func (h *Hub[E]) Input() chan<- E { return h.input.in }

// AddActor must be called before Run.
func (h *Hub[E]) AddActor(action Action[E]) {
	q := newQueue[E]()
	h.outputs = append(h.outputs, q)
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		for event := range q.out {
			for _, out := range action(event) {
				h.input.in <- out
			}
			if event.IsShutdown() {
				return
			}
		}
	}()
}

// Run blocks until a shutdown event has been forwarded and every actor has
// finished its handler.
func (h *Hub[E]) Run() {
	for event := range h.input.out {
		for _, out := range h.outputs {
			out.in <- event
		}
		if event.IsShutdown() {
			break
		}
	}
	h.wg.Wait()
	for _, out := range h.outputs {
		close(out.in)
	}
	close(h.input.in)
	// Drain whatever the shutdown handlers emitted after the bus stopped
	// broadcasting, so their sends never block.
	for range h.input.out {
	}
}
