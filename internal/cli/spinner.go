package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a status line on w while Graphviz renders. It runs
// until Stop is called or the parent context ends.
type spinner struct {
	parent context.Context
	stop   context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// startSpinner draws msg with a rotating frame until the spinner is stopped.
func startSpinner(ctx context.Context, w io.Writer, msg string) *spinner {
	runCtx, stop := context.WithCancel(ctx)
	s := &spinner{parent: ctx, stop: stop}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()
		for i := 0; ; i++ {
			select {
			case <-runCtx.Done():
				fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", len(msg)+4))
				return
			case <-tick.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(msg))
			}
		}
	}()
	return s
}

// Stop ends the animation, clears the line and waits for the drawing
// goroutine. Extra calls do nothing.
func (s *spinner) Stop() {
	s.once.Do(func() {
		s.stop()
		s.wg.Wait()
	})
}

// Cancelled reports whether the spinner ended because its parent context
// was cancelled.
func (s *spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
