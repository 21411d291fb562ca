// Package handler is the HTTP face of the registration service.
//
// Handlers bind and validate payloads, hand them to the registration
// controller or services, and translate outcomes into responses.
package handler
