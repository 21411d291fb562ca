// Package service contains the business logic.
//
// It sits between the transports (HTTP handlers, the terminal form) and
// the repositories: it hashes credentials, persists users and schedules
// follow-up work.
package service
