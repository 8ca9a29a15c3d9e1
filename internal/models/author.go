package models

// Attribution applied to the built-in catalog when it is written to the store.
const (
	DefaultAuthor   = "Albert Camus"
	DefaultLanguage = "fr"
)
