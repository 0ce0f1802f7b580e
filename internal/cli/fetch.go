package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

var fetchFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const fetchFrameInterval = 80 * time.Millisecond

// fetchIndicator animates a one-line "Fetching <url>" status while a remote
// data source downloads. Only its own goroutine writes to w.
type fetchIndicator struct {
	w      io.Writer
	line   string
	cancel context.CancelFunc
	done   chan struct{}
}

// startFetchIndicator starts an indicator for http(s) sources and returns
// nil for local files, which load too fast to need one.
func startFetchIndicator(ctx context.Context, w io.Writer, source string) *fetchIndicator {
	if !isRemote(source) {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	f := &fetchIndicator{
		w:      w,
		line:   "Fetching " + source,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go f.run(ctx)
	return f
}

func (f *fetchIndicator) run(ctx context.Context) {
	defer close(f.done)
	ticker := time.NewTicker(fetchFrameInterval)
	defer ticker.Stop()

	f.draw(0)
	for i := 1; ; i++ {
		select {
		case <-ctx.Done():
			fmt.Fprintf(f.w, "\r%s\r", strings.Repeat(" ", len(f.line)+2))
			return
		case <-ticker.C:
			f.draw(i)
		}
	}
}

func (f *fetchIndicator) draw(frame int) {
	glyph := fetchFrames[frame%len(fetchFrames)]
	fmt.Fprintf(f.w, "\r%s %s", styleIconSpinner.Render(glyph), StyleDim.Render(f.line))
}

// stop clears the status line and returns once the goroutine has exited.
// It may be called on a nil indicator and more than once.
func (f *fetchIndicator) stop() {
	if f == nil {
		return
	}
	f.cancel()
	<-f.done
}
