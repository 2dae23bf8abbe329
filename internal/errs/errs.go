// Package errs defines the error shape returned to API clients.
//
// Every failure leaves the server as an HTTPError so clients always get the
// same JSON body: a machine code, a human message, the status and optional
// field-level errors.
package errs
