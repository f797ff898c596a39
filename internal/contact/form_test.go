package contact_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/excelglass/contactrelay/internal/contact"
	"github.com/excelglass/contactrelay/pkg/notify"
)

type stubTransport struct {
	available bool
	err       error
	calls     atomic.Int32
	deliver   func(ctx context.Context, sub contact.Submission) error
	last      contact.Submission
}

func (s *stubTransport) Available() bool { return s.available }

func (s *stubTransport) Deliver(ctx context.Context, sub contact.Submission) error {
	s.calls.Add(1)
	s.last = sub
	if s.deliver != nil {
		return s.deliver(ctx, sub)
	}
	return s.err
}

func fillValid(ctx context.Context, form *contact.Form) {
	sub := validSubmission()
	form.UpdateField(ctx, contact.FieldName, sub.Name)
	form.UpdateField(ctx, contact.FieldEmail, sub.Email)
	form.UpdateField(ctx, contact.FieldPhone, sub.Phone)
	form.UpdateField(ctx, contact.FieldSubject, sub.Subject)
	form.UpdateField(ctx, contact.FieldMessage, sub.Message)
}

func TestForm_Submit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("successful submit resets draft and emits one success toast", func(t *testing.T) {
		t.Parallel()

		transport := &stubTransport{available: true}
		recorder := notify.NewRecorder()
		form := contact.NewForm(transport, contact.WithNotifier(recorder))
		fillValid(ctx, form)

		require.NoError(t, form.Submit(ctx))

		assert.Equal(t, contact.StateSucceeded, form.State())
		assert.Equal(t, contact.Submission{}, form.Draft(), "draft should be cleared after success")
		assert.Equal(t, int32(1), transport.calls.Load())
		assert.Equal(t, validSubmission(), transport.last)

		toasts := recorder.Toasts()
		require.Len(t, toasts, 1, "exactly one toast per attempt")
		assert.Equal(t, notify.TypeSuccess, toasts[0].Type)
		assert.Equal(t, "Message sent successfully! We'll get back to you soon.", toasts[0].Message)
		assert.Equal(t, notify.PositionTopCenter, toasts[0].Position)
	})

	t.Run("failed submit keeps draft and emits one failure toast", func(t *testing.T) {
		t.Parallel()

		transport := &stubTransport{available: true, err: errors.New("relay responded 500")}
		recorder := notify.NewRecorder()
		form := contact.NewForm(transport, contact.WithNotifier(recorder))
		fillValid(ctx, form)

		err := form.Submit(ctx)
		require.Error(t, err)
		require.ErrorIs(t, err, contact.ErrDeliverFailed)

		assert.Equal(t, contact.StateFailed, form.State())
		assert.Equal(t, validSubmission(), form.Draft(), "draft must survive a failed attempt")
		assert.True(t, form.CanSubmit(), "submit must be re-enabled after failure")

		toasts := recorder.Toasts()
		require.Len(t, toasts, 1)
		assert.Equal(t, notify.TypeError, toasts[0].Type)
		assert.Equal(t, "Failed to send your message. Please try again.", toasts[0].Message)
	})

	t.Run("failure then success on retry", func(t *testing.T) {
		t.Parallel()

		transport := &stubTransport{available: true, err: errors.New("temporary outage")}
		recorder := notify.NewRecorder()
		form := contact.NewForm(transport, contact.WithNotifier(recorder))
		fillValid(ctx, form)

		require.Error(t, form.Submit(ctx))
		require.Equal(t, contact.StateFailed, form.State())

		transport.err = nil
		require.NoError(t, form.Submit(ctx))

		assert.Equal(t, contact.StateSucceeded, form.State())
		assert.Equal(t, int32(2), transport.calls.Load())
		require.Len(t, recorder.Toasts(), 2, "one toast per attempt")
	})

	t.Run("invalid draft reports first failing field and never calls transport", func(t *testing.T) {
		t.Parallel()

		transport := &stubTransport{available: true}
		recorder := notify.NewRecorder()
		form := contact.NewForm(transport, contact.WithNotifier(recorder))
		form.UpdateField(ctx, contact.FieldName, "Jane")
		// email, phone and message are all missing; email is reported first

		require.Error(t, form.Submit(ctx))

		assert.Equal(t, contact.StateIdle, form.State(), "validation failure does not start a delivery")
		assert.Zero(t, transport.calls.Load())

		last, ok := recorder.Last()
		require.True(t, ok)
		assert.Equal(t, notify.TypeError, last.Type)
		assert.Equal(t, "Please enter a valid email address", last.Message)
	})

	t.Run("unavailable transport short-circuits before validation", func(t *testing.T) {
		t.Parallel()

		transport := &stubTransport{available: false}
		recorder := notify.NewRecorder()
		form := contact.NewForm(transport, contact.WithNotifier(recorder))
		fillValid(ctx, form)

		err := form.Submit(ctx)
		require.ErrorIs(t, err, contact.ErrTransportUnavailable)

		assert.Zero(t, transport.calls.Load())
		last, ok := recorder.Last()
		require.True(t, ok)
		assert.Equal(t, notify.TypeError, last.Type)
		assert.Equal(t, "The contact form is temporarily unavailable. Please try again later.", last.Message)
	})

	t.Run("submit while submitting is a silent no-op", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		release := make(chan struct{})
		transport := &stubTransport{
			available: true,
			deliver: func(ctx context.Context, sub contact.Submission) error {
				close(started)
				<-release
				return nil
			},
		}
		recorder := notify.NewRecorder()
		form := contact.NewForm(transport, contact.WithNotifier(recorder))
		fillValid(ctx, form)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = form.Submit(ctx)
		}()

		<-started
		assert.False(t, form.CanSubmit(), "submit control is disabled while in flight")
		require.NoError(t, form.Submit(ctx), "second attempt is dropped, not queued")
		close(release)
		<-done

		assert.True(t, form.CanSubmit(), "submit control is re-enabled after the attempt settles")
		assert.Equal(t, int32(1), transport.calls.Load(), "only one delivery happened")
		require.Len(t, recorder.Toasts(), 1, "only the in-flight attempt produced a toast")
	})

	t.Run("delivery honors the submit timeout", func(t *testing.T) {
		t.Parallel()

		transport := &stubTransport{
			available: true,
			deliver: func(ctx context.Context, sub contact.Submission) error {
				<-ctx.Done()
				return ctx.Err()
			},
		}
		recorder := notify.NewRecorder()
		form := contact.NewForm(transport,
			contact.WithNotifier(recorder),
			contact.WithSubmitTimeout(20*time.Millisecond),
		)
		fillValid(ctx, form)

		err := form.Submit(ctx)
		require.Error(t, err)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, contact.StateFailed, form.State())
	})
}

func TestForm_UpdateField(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("setting the same value twice is idempotent", func(t *testing.T) {
		t.Parallel()

		form := contact.NewForm(&stubTransport{available: true})
		form.UpdateField(ctx, contact.FieldEmail, "jane@example.com")
		once := form.Draft()
		form.UpdateField(ctx, contact.FieldEmail, "jane@example.com")
		assert.Equal(t, once, form.Draft())
		assert.Equal(t, contact.StateIdle, form.State())
	})

	t.Run("editing after failure returns the form to idle", func(t *testing.T) {
		t.Parallel()

		transport := &stubTransport{available: true, err: errors.New("boom")}
		form := contact.NewForm(transport, contact.WithNotifier(notify.NewRecorder()))
		fillValid(ctx, form)

		require.Error(t, form.Submit(ctx))
		require.Equal(t, contact.StateFailed, form.State())

		form.UpdateField(ctx, contact.FieldMessage, "Updated message")
		assert.Equal(t, contact.StateIdle, form.State())
		assert.Equal(t, "Updated message", form.Draft().Message)
	})

	t.Run("editing after success starts a fresh draft", func(t *testing.T) {
		t.Parallel()

		transport := &stubTransport{available: true}
		form := contact.NewForm(transport, contact.WithNotifier(notify.NewRecorder()))
		fillValid(ctx, form)

		require.NoError(t, form.Submit(ctx))
		require.Equal(t, contact.StateSucceeded, form.State())

		form.UpdateField(ctx, contact.FieldName, "Second Visitor")
		assert.Equal(t, contact.StateIdle, form.State())
		assert.Equal(t, contact.Submission{Name: "Second Visitor"}, form.Draft())
	})
}
