// Package notify models transient toast notifications and the channels that
// deliver them.
//
// A Toast carries a severity type, a short user-facing message, a screen
// position and an auto-dismiss duration. Toasts are ephemeral: they are never
// stored, and the contact form emits exactly one per submit attempt.
//
// Delivery goes through the Notifier interface. Implementations included:
//
//   - SlogNotifier writes toasts to a structured logger
//   - MultiNotifier fans out to several channels, best effort
//   - Recorder captures toasts in memory for tests and polling UIs
//   - NotifierFunc adapts a closure
//
// # Usage
//
//	notifier := notify.NewSlogNotifier(log)
//	notifier.Notify(ctx, notify.Error("Please enter your name"))
//	notifier.Notify(ctx, notify.Success("Message sent successfully!"))
package notify
