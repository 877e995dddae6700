/*
Error model for the request core and the default error kinds.

This package defines two main objects for handling errors:

• ErrorType defines a kind of error, such as MissingSubject or DuplicateRecipient.

• Error is an instance of an error which contains an ErrorType, a message, and any
data describing the offending input.

Comparing Errors

Error implements Is, so errors.Is (or xerrors.Is) can be used to compare a returned
error against one of the kinds declared in this package:

	if errors.Is(err, sgerrors.DuplicateRecipient) {
		...
	}
*/
package sgerrors
