package model

// TranslationRequest is one form submission.
type TranslationRequest struct {
	Text           string
	TargetLanguage string
}

// TranslationStatus is the terminal state reached by a request.
type TranslationStatus string

const (
	StatusRejectedEmpty    TranslationStatus = "rejected-empty"
	StatusRejectedLanguage TranslationStatus = "rejected-language"
	StatusSuccess          TranslationStatus = "completed-success"
	StatusError            TranslationStatus = "completed-error"
)

// TranslationResult carries the string shown to the user. Output holds the
// translation on success and the "Error: ..." text on failure.
type TranslationResult struct {
	Output string            `json:"output"`
	Status TranslationStatus `json:"status"`
	RunID  string            `json:"runId,omitempty"`
}

// Succeeded reports whether Output is a translation.
func (r TranslationResult) Succeeded() bool {
	return r.Status == StatusSuccess
}

// Rejected reports whether the request was refused before a run was opened.
func (r TranslationResult) Rejected() bool {
	return r.Status == StatusRejectedEmpty || r.Status == StatusRejectedLanguage
}
