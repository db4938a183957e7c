// Package core provides the foundational domain types used by agentkit. It
// defines the data exchanged between callers and agents:
//
//   - ExecutionContext (caller-owned per-call input, sinks and cancellation)
//   - ExecutionResult (output, status, error text and execution metadata)
//   - Capability / AgentInfo (static agent identity and discovery records)
//   - Health (provider-selection aware liveness record)
//   - CallCounter (provider call accounting surfaced in result metadata)
//
// The package intentionally keeps implementation concerns (providers,
// registry orchestration, concrete agents) out of scope, exposing small
// value types so custom agents and hosting layers stay decoupled.
package core
