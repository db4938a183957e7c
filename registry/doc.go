// Package registry groups a fixed set of agents behind one lifecycle and
// discovery surface.
//
// A Registry is constructed over its full agent collection up front and
// never changes membership. It fans Initialize out to every agent
// concurrently with fail-fast semantics, fans Cleanup out best-effort (no
// agent failure is ever propagated), and serves pure lookups, identity
// projections and health aggregation in between. Health checks catch
// per-agent failures and degrade them into unhealthy records so the
// aggregate map always contains an entry for every registered agent.
package registry
