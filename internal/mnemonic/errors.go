package mnemonic

import "fmt"

// Reason classifies why a phrase was rejected.
type Reason string

const (
	ReasonWordCount   Reason = "word_count"
	ReasonUnknownWord Reason = "unknown_word"
	ReasonChecksum    Reason = "checksum"
)

// ValidationError describes a rejected phrase without echoing it.
type ValidationError struct {
	Reason    Reason
	WordCount int
	Position  int // 1-based, only for ReasonUnknownWord
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonWordCount:
		return fmt.Sprintf("mnemonic must have 12 or 24 words, got %d", e.WordCount)
	case ReasonUnknownWord:
		return fmt.Sprintf("word %d is not in the wordlist", e.Position)
	case ReasonChecksum:
		return "mnemonic checksum does not match"
	default:
		return ErrInvalidMnemonic.Error()
	}
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidMnemonic
}
