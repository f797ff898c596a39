package contact

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/excelglass/contactrelay/pkg/binder"
	"github.com/excelglass/contactrelay/pkg/email"
	"github.com/excelglass/contactrelay/pkg/logger"
)

// DefaultSendTimeout bounds one SMTP dispatch inside the relay handler.
const DefaultSendTimeout = 30 * time.Second

const noDetails = "No additional details available"

type successResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// RelayHandler is the server side of the relay transport: it accepts a
// submission as JSON over POST, re-validates it, composes the operator
// email, and dispatches it through the configured sender.
type RelayHandler struct {
	sender  email.Sender
	log     *slog.Logger
	timeout time.Duration
	bind    func(r *http.Request, v any) error
}

// RelayHandlerOption configures a RelayHandler during construction.
type RelayHandlerOption func(*RelayHandler)

// WithHandlerLogger sets the logger used for request diagnostics.
func WithHandlerLogger(log *slog.Logger) RelayHandlerOption {
	return func(h *RelayHandler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithSendTimeout bounds each SMTP dispatch. Non-positive values are
// ignored.
func WithSendTimeout(d time.Duration) RelayHandlerOption {
	return func(h *RelayHandler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// NewRelayHandler creates the POST /api/contact handler. The sender owns
// the SMTP credentials; the handler never sees them.
func NewRelayHandler(sender email.Sender, opts ...RelayHandlerOption) *RelayHandler {
	h := &RelayHandler{
		sender:  sender,
		log:     slog.Default(),
		timeout: DefaultSendTimeout,
		bind:    binder.BindJSON(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *RelayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Message: "Method not allowed"})
		return
	}

	ctx := r.Context()

	var sub Submission
	if err := h.bind(r, &sub); err != nil {
		h.log.InfoContext(ctx, "Rejected malformed contact request", logger.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	// The browser form validates before posting, but the endpoint is
	// public and must not trust its callers.
	if err := sub.Validate(); err != nil {
		h.log.InfoContext(ctx, "Rejected invalid submission", logger.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: "Invalid submission",
			Error:   firstValidationMessage(err),
		})
		return
	}

	msg, err := ComposeMail(sub)
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to compose contact email", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: "Failed to send email",
			Error:   err.Error(),
			Details: noDetails,
		})
		return
	}

	id, err := h.send(ctx, msg)
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to send contact email",
			logger.Error(err),
			slog.String("reply_to", sub.Email),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: "Failed to send email",
			Error:   err.Error(),
			Details: providerDetails(err),
		})
		return
	}

	h.log.InfoContext(ctx, "Contact email sent",
		logger.MessageID(id),
		slog.String("reply_to", sub.Email),
	)
	writeJSON(w, http.StatusOK, successResponse{Message: "Email sent successfully: " + id})
}

func (h *RelayHandler) send(ctx context.Context, msg email.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return h.sender.Send(ctx, msg)
}

func providerDetails(err error) string {
	if detail, ok := email.ProviderDetail(err); ok {
		return detail
	}
	if errors.Is(err, email.ErrConnectionFailed) {
		return "Could not reach the SMTP server"
	}
	return noDetails
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// The response types marshal without error; a failed write means the
	// client has gone away.
	_ = json.NewEncoder(w).Encode(body)
}
