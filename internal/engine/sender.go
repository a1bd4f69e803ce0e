package engine

// Sender is the reachable end of an actor's update channel. It carries a
// handle naming the caller, used for diagnostics and save-file naming.
type Sender[S any] struct {
	mail   *mailbox[S]
	handle string
}

func (s *Sender[S]) Handle() string { return s.handle }

// CloneWithHandle returns a sender to the same actor under a new handle.
func (s *Sender[S]) CloneWithHandle(handle string) *Sender[S] {
	return &Sender[S]{mail: s.mail, handle: handle}
}

// Future resolves once the target actor has applied the queued closure.
type Future[O any] struct {
	done chan struct{}
	out  O
	err  error
}

func newFuture[O any]() *Future[O] {
	return &Future[O]{done: make(chan struct{})}
}

// Wait blocks until the closure has run and returns its output. Waiting on
// a poisoned actor panics; dropping the future without waiting discards the
// output but never cancels the queued work.
func (f *Future[O]) Wait() O {
	<-f.done
	if f.err != nil {
		panic(f.err)
	}
	return f.out
}

// Update queues a closure to run exclusively against the actor's state and
// returns a future for its output. Messages from one sender are applied in
// send order.
func Update[S, O any](s *Sender[S], f func(*S) O) *Future[O] {
	fut := newFuture[O]()
	s.mail.push(message[S]{
		sender: s.handle,
		apply: func(state *S) {
			fut.out = f(state)
			close(fut.done)
		},
		poison: func() {
			fut.err = ErrActorPoisoned
			close(fut.done)
		},
	})
	return fut
}

// Wait is Update followed by a blocking wait.
func Wait[S, O any](s *Sender[S], f func(*S) O) O {
	return Update(s, f).Wait()
}

// FireAndForget queues a closure without retaining a result.
func FireAndForget[S any](s *Sender[S], f func(*S)) {
	s.mail.push(message[S]{
		sender: s.handle,
		apply:  func(state *S) { f(state) },
		poison: func() {},
	})
}
