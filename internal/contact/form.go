package contact

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/excelglass/contactrelay/pkg/logger"
	"github.com/excelglass/contactrelay/pkg/notify"
	"github.com/excelglass/contactrelay/pkg/statemachine"
)

// Submission lifecycle states. The form starts idle, is submitting while a
// delivery is in flight, and lands on succeeded or failed afterwards.
const (
	StateIdle       statemachine.StringState = "idle"
	StateSubmitting statemachine.StringState = "submitting"
	StateSucceeded  statemachine.StringState = "succeeded"
	StateFailed     statemachine.StringState = "failed"
)

const (
	eventSubmit  statemachine.StringEvent = "submit"
	eventSucceed statemachine.StringEvent = "succeed"
	eventFail    statemachine.StringEvent = "fail"
	eventEdit    statemachine.StringEvent = "edit"
)

// DefaultSubmitTimeout bounds a single delivery attempt so the form can
// never hang in the submitting state.
const DefaultSubmitTimeout = 30 * time.Second

// Form drives the contact-form submission lifecycle: it holds the draft
// submission, validates it, hands it to a Transport, and reports the outcome
// as exactly one toast per submit attempt. All methods are safe for
// concurrent use.
type Form struct {
	mu        sync.Mutex
	draft     Submission
	lifecycle statemachine.StateMachine
	transport Transport
	notifier  notify.Notifier
	log       *slog.Logger
	timeout   time.Duration
}

// FormOption configures a Form during construction.
type FormOption func(*Form)

// WithNotifier sets the channel submit outcomes are reported through.
func WithNotifier(n notify.Notifier) FormOption {
	return func(f *Form) {
		if n != nil {
			f.notifier = n
		}
	}
}

// WithFormLogger sets the logger used for submit diagnostics.
func WithFormLogger(log *slog.Logger) FormOption {
	return func(f *Form) {
		if log != nil {
			f.log = log
		}
	}
}

// WithSubmitTimeout bounds each delivery attempt. Non-positive values are
// ignored.
func WithSubmitTimeout(d time.Duration) FormOption {
	return func(f *Form) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// NewForm creates a form bound to the given transport. Outcomes default to
// the slog notifier until WithNotifier overrides it.
func NewForm(transport Transport, opts ...FormOption) *Form {
	f := &Form{
		transport: transport,
		notifier:  notify.NewSlogNotifier(nil),
		log:       slog.Default(),
		timeout:   DefaultSubmitTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	// The succeed action clears the draft so the next interaction starts
	// from a blank form. The machine is only ever driven under f.mu, so
	// the action may touch f.draft directly.
	f.lifecycle = statemachine.MustNew(StateIdle,
		statemachine.WithTransition(StateIdle, StateSubmitting, eventSubmit),
		statemachine.WithTransition(StateFailed, StateSubmitting, eventSubmit),
		statemachine.WithTransition(StateSucceeded, StateSubmitting, eventSubmit),
		statemachine.WithTransition(StateSubmitting, StateSucceeded, eventSucceed,
			statemachine.WithAction(func(ctx context.Context, from, to statemachine.State, event statemachine.Event, data any) error {
				f.draft = Submission{}
				return nil
			})),
		statemachine.WithTransition(StateSubmitting, StateFailed, eventFail),
		statemachine.WithTransition(StateSucceeded, StateIdle, eventEdit),
		statemachine.WithTransition(StateFailed, StateIdle, eventEdit),
	)
	return f
}

// State returns the current lifecycle state.
func (f *Form) State() statemachine.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lifecycle.Current()
}

// Draft returns a copy of the current draft submission.
func (f *Form) Draft() Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// CanSubmit reports whether a submit attempt would be accepted right now.
// It is false only while a delivery is in flight.
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lifecycle.Current() != StateSubmitting
}

// UpdateField stores a new value for one field of the draft. Editing after a
// terminal outcome returns the form to idle; the draft itself is kept so the
// user can fix a single field and resubmit.
func (f *Form) UpdateField(ctx context.Context, field Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Set(field, value)
	if f.lifecycle.CanFire(ctx, eventEdit, nil) {
		if err := f.lifecycle.Fire(ctx, eventEdit, nil); err != nil {
			f.log.ErrorContext(ctx, "Failed to reset form state on edit", logger.Error(err))
		}
	}
}

// Submit runs one submission attempt end to end: availability check,
// validation, delivery. Exactly one toast is emitted per attempt, and the
// submitting state is always released before Submit returns. The returned
// error mirrors the failure toast for programmatic callers; a nil return
// means the submission was delivered.
//
// Calling Submit while a delivery is already in flight is a no-op: the
// submit control is disabled in that state, so a second attempt is neither
// started nor reported.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()

	if f.lifecycle.Current() == StateSubmitting {
		f.mu.Unlock()
		return nil
	}

	if f.transport == nil || !f.transport.Available() {
		f.mu.Unlock()
		f.log.WarnContext(ctx, "Submission rejected: transport unavailable")
		f.notifier.Notify(ctx, notify.Error(msgUnavailable))
		return ErrTransportUnavailable
	}

	if err := f.draft.Validate(); err != nil {
		f.mu.Unlock()
		f.log.InfoContext(ctx, "Submission rejected by validation", logger.Error(err))
		f.notifier.Notify(ctx, notify.Error(firstValidationMessage(err)))
		return err
	}

	if err := f.lifecycle.Fire(ctx, eventSubmit, nil); err != nil {
		f.mu.Unlock()
		f.log.ErrorContext(ctx, "Failed to enter submitting state", logger.Error(err))
		return err
	}
	draft := f.draft
	f.mu.Unlock()

	// The submitting state is always released, even when delivery panics.
	// The normal paths below fire succeed or fail before this runs.
	defer f.releaseSubmitting(ctx)

	err := f.deliver(ctx, draft)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.log.ErrorContext(ctx, "Submission delivery failed", logger.Error(err))
		if ferr := f.lifecycle.Fire(ctx, eventFail, nil); ferr != nil {
			f.log.ErrorContext(ctx, "Failed to enter failed state", logger.Error(ferr))
		}
		f.notifier.Notify(ctx, notify.Error(msgSendFailed))
		return errors.Join(ErrDeliverFailed, err)
	}

	if serr := f.lifecycle.Fire(ctx, eventSucceed, nil); serr != nil {
		f.log.ErrorContext(ctx, "Failed to enter succeeded state", logger.Error(serr))
	}
	f.log.InfoContext(ctx, "Submission delivered")
	f.notifier.Notify(ctx, notify.Success(msgSendSuccess))
	return nil
}

func (f *Form) releaseSubmitting(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lifecycle.Current() == StateSubmitting {
		_ = f.lifecycle.Fire(context.WithoutCancel(ctx), eventFail, nil)
	}
}

func (f *Form) deliver(ctx context.Context, sub Submission) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	return f.transport.Deliver(ctx, sub)
}
