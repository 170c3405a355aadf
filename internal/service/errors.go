package service

import (
	"errors"

	"traductor/backend/internal/model"
)

var (
	ErrEmptyText           = errors.New("empty text")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrTranslationFailed   = errors.New("translation failed")
)

// ResultError converts a result that is not a translation into an error.
// It returns nil for successful results.
func ResultError(r model.TranslationResult) error {
	switch r.Status {
	case model.StatusSuccess:
		return nil
	case model.StatusRejectedEmpty:
		return &ResultErr{Result: r, kind: ErrEmptyText}
	case model.StatusRejectedLanguage:
		return &ResultErr{Result: r, kind: ErrUnsupportedLanguage}
	default:
		return &ResultErr{Result: r, kind: ErrTranslationFailed}
	}
}

// ResultErr carries the result a failed translation produced.
type ResultErr struct {
	Result model.TranslationResult
	kind   error
}

func (e *ResultErr) Error() string {
	return e.Result.Output
}

func (e *ResultErr) Is(target error) bool {
	return target == e.kind
}
