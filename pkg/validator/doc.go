// Package validator provides composable, rule-based validation helpers for
// form input.
//
// The package promotes declarative validation by letting you build small Rule
// values that encapsulate a boolean Check function together with a
// field-specific error message. Rules are evaluated either with Apply, which
// aggregates every failure into a ValidationErrors slice, or with First,
// which stops at the first failing rule and reports only that error. First
// matches the contact-form policy where the user is prompted about one field
// at a time, in the order the rules are declared.
//
// # Usage
//
//	err := validator.First(
//	    validator.RequiredStringMsg("name", name, "Please enter your name"),
//	    validator.ValidEmailMsg("email", email, "Please enter a valid email address"),
//	    validator.RequiredStringMsg("message", message, "Please enter your message"),
//	)
//	if err != nil {
//	    if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	        // surface verrs[0].Message to the user
//	    }
//	}
//
// # Error Handling
//
// ValidationErrors implements the error interface, so errors.As can detect
// validation problems while preserving field-level detail. Individual field
// errors can be inspected with the helper methods Has, Get and Fields.
//
// All helpers are simple comparisons or pre-compiled pattern checks with no
// hidden global state; the package is stateless and goroutine-safe.
package validator
