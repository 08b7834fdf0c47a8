package util

import (
	"fmt"
)

// SafeCall runs fn such that panics are recovered and nice error messages are constructed.
// what describes fn in the resulting error.
func SafeCall(what string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = fmt.Errorf("%s Panic: %w\n%s", what, anErr, GetTrace())
			} else {
				err = fmt.Errorf("%s Panic: %v\n%s", what, r, GetTrace())
			}
		} else if err != nil {
			err = fmt.Errorf("%s Error: %w", what, err)
		}
	}()
	err = fn()
	return
}
