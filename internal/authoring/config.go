package authoring

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxPriorQuestions caps how many existing prompts are listed in the
	// request so the model avoids repeating them.
	MaxPriorQuestions int

	// Count is the number of drafts requested when Input.Count is zero.
	Count int
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:         4096,
		Temperature:       0.7,
		MaxPriorQuestions: 20,
		Count:             5,
	}
}
