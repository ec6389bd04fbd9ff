// Package panicerr converts panics into ordinary errors so a single
// misbehaving task cannot take down the batch it runs in.
package panicerr

import (
	"github.com/sourcegraph/conc/panics"
)

// Catch runs fn and returns its error. If fn panics, the recovered value is
// returned as an error (with stack) instead of propagating.
func Catch(fn func() error) error {
	var (
		catcher panics.Catcher
		err     error
	)
	catcher.Try(func() {
		err = fn()
	})
	if err != nil {
		return err
	}
	return catcher.Recovered().AsError()
}
