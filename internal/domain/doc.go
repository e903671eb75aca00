// Package domain contains the core business entities and rules of the
// application: users, studies and their lifecycle state machine, and the
// multiple-choice questions derived from them. It has no dependencies on
// persistence, transport or external services.
package domain
