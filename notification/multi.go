package notification

import "errors"

// Multi fans one event out to every configured channel. Delivery failures are
// collected, not short-circuited, so a broken channel never silences the rest.
type Multi struct {
	notifiers []Notifier
}

// NewMulti builds a fan-out notifier. Nil entries are skipped.
func NewMulti(notifiers ...Notifier) *Multi {
	m := &Multi{}
	for _, n := range notifiers {
		if n != nil {
			m.notifiers = append(m.notifiers, n)
		}
	}
	return m
}

// Send delivers the event to every channel and joins any failures.
func (m *Multi) Send(event Event) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Send(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
