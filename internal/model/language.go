package model

import "slices"

// DefaultLanguage is preselected in the form.
const DefaultLanguage = "English"

// SupportedLanguages lists the target languages offered to users, in display order.
var SupportedLanguages = []string{
	"English",
	"Spanish",
	"French",
	"German",
	"Italian",
	"Portuguese",
	"Dutch",
	"Russian",
	"Japanese",
	"Chinese (Simplified)",
}

// IsSupportedLanguage reports whether name is one of SupportedLanguages.
// Matching is exact: the names are also what gets recorded on the run.
func IsSupportedLanguage(name string) bool {
	return slices.Contains(SupportedLanguages, name)
}
