package repository

// Subscription is a handle to a live query or document listener. Stop cancels
// the listener and blocks until its callback goroutine has fully exited, so a
// caller replacing one listener with another never has two running at once.
type Subscription interface {
	Stop()
}
