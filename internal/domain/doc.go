// Package domain holds the core entities shared across the planning
// service: creators and their performance snapshots, similarity links,
// plan requests, and generated plans.
//
// Everything in this package is a plain value type. The planner core
// receives these read-only per request; nothing here is mutated or
// persisted by the planner itself.
package domain
