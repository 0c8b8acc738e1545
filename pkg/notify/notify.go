package notify

import (
	"context"
	"errors"
	"time"
)

// Name identifies a diagnostic signal.
type Name string

const (
	// WillTransition is posted after a transition is accepted and before the
	// machine replaces its current state.
	WillTransition Name = "GauntletWillTransitionNotification"

	// DidTransition is posted once a transition has been delivered to every
	// subscriber of the machine.
	DidTransition Name = "GauntletDidTransitionNotification"
)

// Notification is one diagnostic signal.
type Notification struct {
	Name   Name      `json:"name"`
	Object string    `json:"object"`
	From   any       `json:"from"`
	To     any       `json:"to"`
	At     time.Time `json:"at"`
}

// Poster delivers notifications to an observer such as a test harness.
// Machines call Post while holding internal locks, so implementations must
// not block for long and must not call back into the machine.
type Poster interface {
	Post(ctx context.Context, n Notification) error
}

// PosterFunc adapts a plain function to the Poster interface.
type PosterFunc func(ctx context.Context, n Notification) error

func (f PosterFunc) Post(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// Multi returns a Poster that posts to every non-nil poster in order and
// joins their errors.
func Multi(posters ...Poster) Poster {
	clean := make([]Poster, 0, len(posters))
	for _, p := range posters {
		if p != nil {
			clean = append(clean, p)
		}
	}
	return PosterFunc(func(ctx context.Context, n Notification) error {
		var errs []error
		for _, p := range clean {
			if err := p.Post(ctx, n); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
