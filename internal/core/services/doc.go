// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The session service owns all session state. The upload and chat
// services mutate that state only through unexported hooks on it, so
// every state change funnels through one place.
package services
