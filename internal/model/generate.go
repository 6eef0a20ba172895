package model

import "github.com/AlexZinkM/qsafe-wallet/internal/lockout"

// PasswordRequest is the body of POST /wallet/create and /wallet/unlock
type PasswordRequest struct {
	Password string `json:"password"`
}

// RestoreRequest is the body of POST /wallet/restore
type RestoreRequest struct {
	Mnemonic string `json:"mnemonic"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the body of POST /wallet/password
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// VerifyWordRequest is the body of POST /wallet/seed/verify
type VerifyWordRequest struct {
	Index int    `json:"index"`
	Word  string `json:"word"`
}

// SignRequest is the body of POST /wallet/sign
type SignRequest struct {
	Message string `json:"message"`
}

// GenerateResponse represents response for POST /wallet/create and /wallet/restore
type GenerateResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Address       string `json:"address,omitempty"`
	Mnemonic      string `json:"mnemonic,omitempty"` // only right after create
	PasswordScore int    `json:"passwordScore"`
}

// UnlockResponse represents response for POST /wallet/unlock
type UnlockResponse struct {
	Success           bool             `json:"success"`
	Address           string           `json:"address,omitempty"`
	AttemptsRemaining int              `json:"attemptsRemaining"`
	Ban               *lockout.BanInfo `json:"ban,omitempty"`
}

// StatusResponse represents response for GET /wallet/status
type StatusResponse struct {
	HasWallet         bool             `json:"hasWallet"`
	IsUnlocked        bool             `json:"isUnlocked"`
	State             string           `json:"state"`
	Meta              *WalletMeta      `json:"meta,omitempty"`
	AttemptsRemaining int              `json:"attemptsRemaining"`
	Ban               *lockout.BanInfo `json:"ban,omitempty"`
}

// SeedPhraseResponse represents response for GET /wallet/seed
type SeedPhraseResponse struct {
	Revealed bool   `json:"revealed"`
	Mnemonic string `json:"mnemonic,omitempty"`
}

// VerifyWordResponse represents response for POST /wallet/seed/verify
type VerifyWordResponse struct {
	Match bool `json:"match"`
}

// SignResponse represents response for POST /wallet/sign
type SignResponse struct {
	Address   string `json:"address"`
	PublicKey string `json:"publicKey"` // base64
	Signature string `json:"signature"` // base64
}

// AddressQRResponse represents response for GET /wallet/address/qr
type AddressQRResponse struct {
	Address string `json:"address"`
	QR      string `json:"QR"` // base64 PNG
}

// SuccessResponse is returned by endpoints without a payload
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
