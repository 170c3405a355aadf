package ai

import "fmt"

// Fixed sampling parameters for translation calls.
const (
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 800
)

// BuildTranslationPrompt returns the user message asking the model to translate
// text into language and to answer with the translation only.
func BuildTranslationPrompt(text, language string) string {
	return fmt.Sprintf("Traduce el siguiente texto al %s:\n\n%s\n\nResponde solo con la traducción.", language, text)
}

// NewTranslationRequest wraps the translation prompt with the fixed sampling parameters.
func NewTranslationRequest(text, language string) CompletionRequest {
	return CompletionRequest{
		Prompt:      BuildTranslationPrompt(text, language),
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}
