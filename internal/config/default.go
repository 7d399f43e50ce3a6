package config

// Document source modes
const (
	ModeText   = "text"
	ModeUpload = "upload"
)

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Provider: ProviderConfig{
			Endpoint:    "https://api.openai.com/v1",
			APIKey:      "",
			Model:       "gpt-4o",
			Temperature: 0.2,
		},
		Agent: AgentConfig{
			MaxIterations: 5,
			MemoryWindow:  5,
		},
		Document: DocumentConfig{
			Mode:    ModeText,
			DataDir: "data",
		},
		UI: UIConfig{
			ColorEnabled: true,
			ShowSpinner:  true,
		},
	}
}
