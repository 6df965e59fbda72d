package vocabulary

import "errors"

var (
	// ErrDuplicateValue is returned when persisted data repeats a value.
	ErrDuplicateValue = errors.New("duplicate vocabulary value")
	// ErrMissingVocabulary is returned when a required vocabulary file is absent.
	ErrMissingVocabulary = errors.New("vocabulary not found")
	// ErrMalformedVocabulary is returned when a vocabulary file is not a JSON string array.
	ErrMalformedVocabulary = errors.New("malformed vocabulary")
	// ErrUnknownVocabulary is returned for a name the registry was not opened with.
	ErrUnknownVocabulary = errors.New("unknown vocabulary")
)
