package session

import (
	"fmt"

	"github.com/nbutton23/zxcvbn-go"
)

// MaxPasswordScore is the strongest zxcvbn rating.
const MaxPasswordScore = 4

// PasswordScore rates password from 0 (trivially guessable) to 4.
func PasswordScore(password []byte) int {
	if len(password) == 0 {
		return 0
	}
	return zxcvbn.PasswordStrength(string(password), nil).Score
}

func checkPassword(password []byte, minScore int) error {
	if len(password) == 0 {
		return ErrEmptyPassword
	}
	if minScore <= 0 {
		return nil
	}
	if score := PasswordScore(password); score < minScore {
		return fmt.Errorf("%w: score %d, need %d", ErrWeakPassword, score, minScore)
	}
	return nil
}
