package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a status line on stderr while Graphviz renders. After a
// second it appends the elapsed time. It stops on its own when ctx is
// cancelled, e.g. on Ctrl-C.
type spinner struct {
	w      io.Writer
	label  string
	ctx    context.Context
	cancel context.CancelFunc
	exited chan struct{}
	once   sync.Once

	mu      sync.Mutex
	started bool
	width   int // widest line drawn so far
}

func newSpinner(ctx context.Context, label string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &spinner{
		w:      os.Stderr,
		label:  label,
		ctx:    ctx,
		cancel: cancel,
		exited: make(chan struct{}),
	}
}

// Start launches the animation goroutine.
func (s *spinner) Start() {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	begin := time.Now()
	go func() {
		defer close(s.exited)
		defer s.clear()
		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-tick.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)], time.Since(begin))
			}
		}
	}()
}

func (s *spinner) draw(frame string, elapsed time.Duration) {
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.label)
	if elapsed >= time.Second {
		line += StyleDim.Render(fmt.Sprintf(" %ds", int(elapsed.Seconds())))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = max(s.width, lipgloss.Width(line))
	fmt.Fprint(s.w, "\r"+line)
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprint(s.w, "\r"+strings.Repeat(" ", s.width)+"\r")
	}
}

// Stop ends the animation and waits for the line to be cleared. Extra calls
// are no-ops.
func (s *spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		s.mu.Lock()
		started := s.started
		s.mu.Unlock()
		if started {
			<-s.exited
		}
	})
}

// StopWithError stops the spinner and prints message as an error.
func (s *spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}
