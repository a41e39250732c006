package cli

import (
	"io"

	"github.com/muesli/termenv"
)

// Clipboard copies text to the user's clipboard.
type Clipboard interface {
	Copy(text string) error
}

// osc52Clipboard sets the clipboard with the OSC 52 escape sequence, which
// most terminals honour, including over SSH.
type osc52Clipboard struct {
	out *termenv.Output
}

func newOSC52Clipboard(w io.Writer) *osc52Clipboard {
	return &osc52Clipboard{out: termenv.NewOutput(w)}
}

func (c *osc52Clipboard) Copy(text string) error {
	c.out.Copy(text)
	return nil
}
