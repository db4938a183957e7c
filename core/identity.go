package core

// Capability describes one named operation an agent exposes. Descriptors are
// static, part of the agent's identity and immutable after construction.
//
// InputSchema and OutputSchema are advisory JSON-schema style maps intended
// for discovery and UI surfaces. They are never validated at runtime; the
// Executor.ValidateInput hook exists as a contract point but the baseline
// behavior always accepts.
type Capability struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	InputSchema  map[string]any `json:"input_schema,omitempty"`
	OutputSchema map[string]any `json:"output_schema,omitempty"`
}

// AgentInfo is the read-only identity projection of an agent used for
// discovery. ID is the unique key within a registry; Capabilities preserves
// declaration order.
type AgentInfo struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Capabilities []Capability `json:"capabilities"`
}

// HasCapability reports whether the identity declares the named capability.
func (i AgentInfo) HasCapability(name string) bool {
	for _, c := range i.Capabilities {
		if c.Name == name {
			return true
		}
	}
	return false
}

// CapabilityNames returns the declared capability names in order.
func (i AgentInfo) CapabilityNames() []string {
	names := make([]string, len(i.Capabilities))
	for idx, c := range i.Capabilities {
		names[idx] = c.Name
	}
	return names
}

// Health reflects an agent's current provider-selection state. Healthy is
// true whenever the agent can serve executions, including degraded/offline
// mode; Message carries provider detail or a degradation note.
type Health struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}
