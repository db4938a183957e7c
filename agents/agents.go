package agents

import (
	"github.com/tutorwise/agentkit/agent"
	"github.com/tutorwise/agentkit/logging"
	"github.com/tutorwise/agentkit/provider"
)

// Default returns the standard agent set, ready for registry construction.
// All agents share the same credentials and logger; each resolves its own
// provider selection during Initialize.
func Default(creds provider.Credentials, logger logging.Logger, optFns ...func(o *agent.Options)) []agent.Executor {
	shared := func(o *agent.Options) {
		o.Credentials = creds
		o.Logger = logger
		for _, fn := range optFns {
			fn(o)
		}
	}

	return []agent.Executor{
		NewLessonAgent(shared),
		NewAssessmentAgent(shared),
		NewListingAgent(shared),
		NewAuditAgent(shared),
		NewSupportAgent(shared),
		NewInsightsAgent(shared),
		NewOnboardingAgent(shared),
		NewPlannerAgent(shared),
	}
}
