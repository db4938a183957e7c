// Package agent contains the executor contract every agentkit agent
// implements and the embeddable BaseAgent that provides the shared execution
// pipeline. The package focuses on three concerns:
//
//  1. The Executor interface (identity, lifecycle, execution, health)
//  2. Capability registration and string-discriminator dispatch (BaseAgent)
//  3. Provider-aware generation with graceful degradation (Invocation)
//
// Execution model:
//   - A caller-owned *core.ExecutionContext arrives per Execute call; its
//     "action" field selects the capability handler
//   - Handlers receive an Invocation scoped to the call, exposing the
//     remaining input fields, the caller's sinks and a degradation-aware
//     Generate helper
//   - Provider failures degrade to placeholder output inside the handler;
//     they never turn the overall result into an error status
//
// Concurrency: Execute performs no per-agent serialization. Provider
// selection state is written once during Initialize and read-only
// afterwards, and the Provider contract requires implementations safe for
// concurrent Generate calls. Callers needing bounded latency impose their
// own timeout via the context they pass to Execute.
package agent
