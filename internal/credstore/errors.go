package credstore

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/qsafe-wallet/internal/crypto"
	"github.com/AlexZinkM/qsafe-wallet/internal/lockout"
	"github.com/AlexZinkM/qsafe-wallet/internal/storage"
)

var (
	ErrNoWallet           = errors.New("no wallet stored")
	ErrBanned             = errors.New("too many failed attempts")
	ErrCorrupted          = errors.New("stored wallet is corrupted")
	ErrInvalidSecrets     = errors.New("wallet secrets incomplete")
	ErrDecryptionFailed   = crypto.ErrDecryptionFailed
	ErrStorageUnavailable = storage.ErrUnavailable
)

// BannedError is returned while a lockout window is active.
type BannedError struct {
	Info lockout.BanInfo
}

func (e *BannedError) Error() string {
	return fmt.Sprintf("%v: %d attempts, retry in %ds", ErrBanned, e.Info.Attempts, e.Info.RemainingSeconds)
}

func (e *BannedError) Is(target error) bool {
	return target == ErrBanned
}

// WrongPasswordError is returned when decryption fails. It carries the
// failure record as it stood right after this attempt.
type WrongPasswordError struct {
	Attempts int
	Ban      *lockout.BanInfo
}

func (e *WrongPasswordError) Error() string {
	return fmt.Sprintf("%v: %d consecutive failures", ErrDecryptionFailed, e.Attempts)
}

func (e *WrongPasswordError) Is(target error) bool {
	return target == ErrDecryptionFailed
}

// AttemptsUntilBan is the number of wrong passwords left before a ban.
func (e *WrongPasswordError) AttemptsUntilBan() int {
	return lockout.AttemptsUntilBan(&lockout.Record{Attempts: e.Attempts})
}
