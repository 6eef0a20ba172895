package model

import "github.com/AlexZinkM/qsafe-wallet/internal/lockout"

// Error codes returned in ErrorResponse.Code
const (
	CodeInvalidMnemonic    = "INVALID_MNEMONIC"
	CodeDecryptionFailed   = "DECRYPTION_FAILED"
	CodeBanned             = "BANNED"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeNoWallet           = "NO_WALLET"
	CodeLocked             = "LOCKED"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeBadRequest         = "BAD_REQUEST"
	CodeInternal           = "INTERNAL"
)

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error             string           `json:"error"`
	Code              string           `json:"code,omitempty"`
	AttemptsRemaining *int             `json:"attemptsRemaining,omitempty"`
	Ban               *lockout.BanInfo `json:"ban,omitempty"`
}
