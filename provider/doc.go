// Package provider defines the provider-agnostic abstraction for the
// external text-generation backends agentkit agents may call.
//
// Core goals:
//   - One minimal operation: Generate(prompt, options) -> text
//   - Concrete adapters for Anthropic (primary) and OpenAI (secondary)
//   - Ordered credential probing via Resolve, with offline mode as a
//     first-class, non-error outcome
//   - Lightweight mocking for tests (MockProvider)
//
// Adapters implement the Provider interface so higher layers (agents,
// registry) remain decoupled from vendor SDKs. All implementations must be
// safe for concurrent Generate calls; the framework does not serialize
// executions per agent.
package provider
