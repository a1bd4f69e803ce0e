package engine

import "sync"

type message[S any] struct {
	apply  func(*S)
	poison func()
	sender string
	stop   bool
}

// mailbox is the queue behind an update channel. A capacity of zero means
// unbounded; a bounded mailbox blocks senders while full.
type mailbox[S any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	queue    []message[S]
	capacity int
	closed   bool
}

func newMailbox[S any](capacity int) *mailbox[S] {
	m := &mailbox[S]{capacity: capacity}
	m.notEmpty = sync.NewCond(&m.mu)
	m.notFull = sync.NewCond(&m.mu)
	return m
}

func (m *mailbox[S]) push(msg message[S]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for m.capacity > 0 && len(m.queue) >= m.capacity && !m.closed {
		m.notFull.Wait()
	}
	if m.closed {
		panic(ErrChannelClosed)
	}
	m.queue = append(m.queue, msg)
	m.notEmpty.Signal()
}

func (m *mailbox[S]) pop() (message[S], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.queue) == 0 && !m.closed {
		m.notEmpty.Wait()
	}
	if len(m.queue) == 0 {
		return message[S]{}, false
	}
	msg := m.queue[0]
	m.queue = m.queue[1:]
	m.notFull.Signal()
	return msg, true
}

// drain returns everything queued without blocking.
func (m *mailbox[S]) drain() []message[S] {
	m.mu.Lock()
	defer m.mu.Unlock()
	queued := m.queue
	m.queue = nil
	m.notFull.Broadcast()
	return queued
}

func (m *mailbox[S]) close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.notEmpty.Broadcast()
	m.notFull.Broadcast()
}
