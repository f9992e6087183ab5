// Package driving defines the interfaces the outside world calls IN through.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// CLI adapters depend on these interfaces; core services implement them.
package driving
