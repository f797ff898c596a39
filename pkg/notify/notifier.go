package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Notifier presents a toast to the user through some channel.
type Notifier interface {
	Notify(ctx context.Context, toast Toast)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(ctx context.Context, toast Toast)

func (f NotifierFunc) Notify(ctx context.Context, toast Toast) {
	f(ctx, toast)
}

// SlogNotifier writes toasts to a structured logger. Useful as a default
// channel and for headless environments.
type SlogNotifier struct {
	log *slog.Logger
}

// NewSlogNotifier creates a Notifier backed by the given logger.
// A nil logger falls back to slog.Default.
func NewSlogNotifier(log *slog.Logger) *SlogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &SlogNotifier{log: log}
}

func (n *SlogNotifier) Notify(ctx context.Context, toast Toast) {
	level := slog.LevelInfo
	if toast.Type == TypeError {
		level = slog.LevelWarn
	}
	n.log.LogAttrs(ctx, level, "Toast",
		slog.String("toast_id", toast.ID),
		slog.String("type", string(toast.Type)),
		slog.String("message", toast.Message),
		slog.String("position", string(toast.Position)),
	)
}

// MultiNotifier fans a toast out to several channels. Delivery is best
// effort; a channel cannot veto the others.
type MultiNotifier struct {
	notifiers []Notifier
}

func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

func (m *MultiNotifier) Notify(ctx context.Context, toast Toast) {
	for _, n := range m.notifiers {
		if n != nil {
			n.Notify(ctx, toast)
		}
	}
}

// Recorder captures toasts in memory. Intended for tests and for UIs that
// poll for pending toasts.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(ctx context.Context, toast Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast)
}

// Toasts returns a copy of all captured toasts in delivery order.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Toast, len(r.toasts))
	copy(out, r.toasts)
	return out
}

// Last returns the most recently captured toast, if any.
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}

// Reset discards all captured toasts.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = nil
}
