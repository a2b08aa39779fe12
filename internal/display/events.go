package display

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/gnomegl/gitdash/internal/session"
	"github.com/schollz/progressbar/v3"
)

// Reporter prints session events: a spinner while an analysis loads, and
// notifications and validation messages as they arrive.
type Reporter struct {
	out     io.Writer
	spinner bool

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
	bar  *progressbar.ProgressBar
}

// NewReporter writes to out. The loading spinner is only drawn when spinner
// is set, so pipes and logs stay clean.
func NewReporter(out io.Writer, spinner bool) *Reporter {
	return &Reporter{out: out, spinner: spinner}
}

// Attach subscribes r to s and returns the unsubscribe function.
func (r *Reporter) Attach(s *session.Session) func() {
	unsubscribe := s.Subscribe(r.Handle)
	return func() {
		unsubscribe()
		r.stopSpinner()
	}
}

func (r *Reporter) Handle(ev session.Event) {
	switch ev.Kind {
	case session.EventStateChanged:
		switch ev.State {
		case session.StateLoading:
			r.startSpinner()
		case session.StateError:
			r.stopSpinner()
			color.New(color.FgRed).Fprintf(r.out, "Error: %s\n", ev.Message)
		default:
			r.stopSpinner()
		}
	case session.EventValidationFailed:
		color.New(color.FgYellow).Fprintln(r.out, ev.Message)
	case session.EventNotification:
		if ev.Success {
			color.New(color.FgGreen).Fprintln(r.out, ev.Message)
		} else {
			color.New(color.FgRed).Fprintln(r.out, ev.Message)
		}
	case session.EventNavigate:
		fmt.Fprintf(r.out, "%s %s\n", labelColor.Sprint("→"), ev.Destination)
	}
}

func (r *Reporter) startSpinner() {
	if !r.spinner {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar != nil {
		return
	}

	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan]Analyzing GitHub activity[reset]"),
		progressbar.OptionClearOnFinish())
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	go func(bar *progressbar.ProgressBar, stop, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				bar.Add(1)
			}
		}
	}(r.bar, r.stop, r.done)
}

func (r *Reporter) stopSpinner() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar == nil {
		return
	}

	close(r.stop)
	<-r.done
	r.bar.Finish()
	r.bar = nil
}
