package ui

import (
	"context"

	"fyne.io/fyne/v2"

	"github.com/devlink/desktop/internal/auth"
)

// runInBackground and runOnMain are swapped for synchronous versions in tests.
var (
	runInBackground = func(f func()) { go f() }
	runOnMain       = fyne.Do
)

// submit runs call off the UI goroutine and delivers its outcome back on it.
// Each submission is independent; a second click while one is in flight
// starts another request.
func submit(call func(ctx context.Context) (auth.Result, error), done func(auth.Result, error)) {
	runInBackground(func() {
		result, err := call(context.Background())
		runOnMain(func() {
			done(result, err)
		})
	})
}
