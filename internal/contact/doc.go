// Package contact implements the Excel Glass contact-form pipeline: the
// submission model and its validation, the form lifecycle that drives a
// submit attempt from draft to outcome, the two delivery transports
// (direct provider email and the mail relay), and the relay's HTTP
// handler.
//
// A submission lives only for the duration of one interaction. The form
// validates it field by field, reports the first failure, and hands valid
// drafts to a Transport. Every submit attempt produces exactly one toast.
package contact
