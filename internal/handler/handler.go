// Package handler is the HTTP layer between the router and the services.
//
// Handlers declare their input as request types with ordered validation
// rules, run through the shared pipeline in base.go, and translate service
// results into the success envelope.
package handler
