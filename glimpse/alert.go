package glimpse

import (
	"fmt"
	"io"
)

// alertWindow is the part of a desktop window used to show an alert.
type alertWindow interface {
	SetTitle(title string)
	Show()
	ShouldClose() bool
}

// showAlert writes the message to out, shows it in the title of the window
// and blocks until the user closes the window.
func showAlert(out io.Writer, win alertWindow, waitEvents func(), message string) {
	_, _ = fmt.Fprintln(out, message)

	win.SetTitle(message)
	win.Show()

	for !win.ShouldClose() {
		waitEvents()
	}
}
