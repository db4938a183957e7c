// Package agents provides the concrete agent set for the tutoring
// marketplace: lesson content, assessment, marketplace listings, quality
// audits, customer support, analytics insights, tutor onboarding and study
// planning.
//
// Every agent is a BaseAgent with a closed capability set and one handler
// per capability. Handlers render a prompt from the request fields, check
// cancellation before calling the provider, and carry a deterministic
// placeholder payload so the agent stays useful offline or when the
// provider call fails. Use Default to obtain the full set for registry
// construction.
package agents
