// Package spinner provides a terminal progress indicator for long-running scoring.
package spinner

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// Spinner represents a spinning progress indicator with an optional done/total counter.
type Spinner struct {
	frames  []string
	delay   time.Duration
	writer  io.Writer
	active  bool
	mu      sync.RWMutex
	ctx     context.Context
	cancel  context.CancelFunc
	message string
	done    int
	total   int
	wg      sync.WaitGroup
}

// New creates a new spinner writing to writer.
// ctx allows for cancellation of the spinner goroutine.
func New(ctx context.Context, writer io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		frames:  []string{"◜", "◠", "◝", "◞", "◡", "◟"},
		delay:   100 * time.Millisecond,
		writer:  writer,
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return // already running
	}

	s.active = true

	s.wg.Add(1)
	go s.run()
}

// Stop stops the spinner animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return // not running
	}

	s.active = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()

	// clear the whole line on a terminal; elsewhere a carriage return is enough
	if IsTerminal(s.writer) {
		fmt.Fprint(s.writer, "\r\033[2K")
	} else {
		fmt.Fprint(s.writer, "\r")
	}
}

// UpdateMessage updates the spinner message
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// UpdateProgress records done out of total; it is shown after the message.
// Safe to call from several goroutines.
func (s *Spinner) UpdateProgress(done, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// rows finish out of order when scored in parallel; never move backwards
	if total != s.total {
		s.total = total
		s.done = done
		return
	}
	if done > s.done {
		s.done = done
	}
}

// line renders the current frame text
func (s *Spinner) line(frameIndex int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	frame := s.frames[frameIndex%len(s.frames)]
	if s.total > 0 {
		return fmt.Sprintf("\r%s %s (%d/%d)", frame, s.message, s.done, s.total)
	}
	return fmt.Sprintf("\r%s %s", frame, s.message)
}

// run is the main spinner loop.
func (s *Spinner) run() {
	defer s.wg.Done()

	frameIndex := 0
	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			fmt.Fprint(s.writer, s.line(frameIndex))
			frameIndex++
		}
	}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
