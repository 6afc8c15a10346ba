// Package validation contains the logic for validating
// request data.
//
// Requests declare an ordered list of rules (field, value,
// validator tag, error code). Rules run through the `validator`
// library one at a time and the first failing rule rejects the
// request with that rule's error code.
package validation
