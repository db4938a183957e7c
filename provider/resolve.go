package provider

// Backend names reported through result metadata and health records.
const (
	NameAnthropic = "anthropic"
	NameOpenAI    = "openai"
	// NameNone marks offline / degraded mode: no backend is configured and
	// handlers return deterministic placeholder output.
	NameNone = "none"
)

// Credentials carries the configuration a Resolve call probes. All fields
// are optional; an entirely empty value resolves to offline mode.
type Credentials struct {
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string
}

// Selection is the outcome of provider resolution. It is established once
// per agent during Initialize and never re-resolved for the instance's
// lifetime. Offline is a first-class state, not a fault: Provider is nil and
// Name is NameNone.
type Selection struct {
	Provider Provider
	Name     string
}

// Offline reports whether no backend was selected.
func (s Selection) Offline() bool { return s.Provider == nil }

// Resolve probes the ordered preference list - Anthropic first, then OpenAI -
// and selects the first backend with a usable credential. When neither is
// configured the returned selection is offline; that is a valid outcome and
// never an error.
func Resolve(creds Credentials) Selection {
	if creds.AnthropicAPIKey != "" {
		p := NewAnthropicProvider(func(o *AnthropicOptions) {
			o.APIKey = creds.AnthropicAPIKey
			if creds.AnthropicModel != "" {
				o.Model = creds.AnthropicModel
			}
		})
		return Selection{Provider: p, Name: NameAnthropic}
	}

	if creds.OpenAIAPIKey != "" {
		p := NewOpenAIProvider(func(o *OpenAIOptions) {
			o.APIKey = creds.OpenAIAPIKey
			if creds.OpenAIModel != "" {
				o.Model = creds.OpenAIModel
			}
		})
		return Selection{Provider: p, Name: NameOpenAI}
	}

	return Selection{Name: NameNone}
}
