package engine

import (
	"fmt"
)

// Actor owns a value of type S and applies queued closures to it one at a
// time on its own goroutine. Nothing else may touch the state.
type Actor[S any] struct {
	name     string
	mail     *mailbox[S]
	state    S
	poisoned bool
	out      chan S
}

// NewActor creates an actor with an unbounded mailbox.
func NewActor[S any](name string, state S) *Actor[S] {
	return newActor(name, state, 0)
}

// NewBoundedActor creates an actor whose mailbox backpressures senders once
// capacity messages are queued.
func NewBoundedActor[S any](name string, state S, capacity int) *Actor[S] {
	if capacity <= 0 {
		panic(fmt.Sprintf("actor %s: bounded mailbox needs capacity > 0", name))
	}
	return newActor(name, state, capacity)
}

func newActor[S any](name string, state S, capacity int) *Actor[S] {
	return &Actor[S]{
		name:  name,
		mail:  newMailbox[S](capacity),
		state: state,
		out:   make(chan S, 1),
	}
}

func (a *Actor[S]) Name() string { return a.name }

func (a *Actor[S]) Sender(handle string) *Sender[S] {
	return &Sender[S]{mail: a.mail, handle: handle}
}

// Start launches the run loop.
func (a *Actor[S]) Start() {
	go a.run()
}

func (a *Actor[S]) run() {
	for {
		msg, ok := a.mail.pop()
		if !ok {
			return
		}
		if msg.stop {
			for _, queued := range a.mail.drain() {
				a.apply(queued)
			}
			a.mail.close()
			a.out <- a.state
			return
		}
		a.apply(msg)
	}
}

func (a *Actor[S]) apply(msg message[S]) {
	if a.poisoned {
		msg.poison()
		return
	}
	defer func() {
		if r := recover(); r != nil {
			a.poisoned = true
			msg.poison()
		}
	}()
	msg.apply(&a.state)
}

// Stop asks the run loop to exit after applying everything already queued,
// then returns the owned state to the caller.
func (a *Actor[S]) Stop() S {
	a.mail.push(message[S]{sender: a.name, stop: true})
	return <-a.out
}
