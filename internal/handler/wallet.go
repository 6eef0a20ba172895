package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/AlexZinkM/qsafe-wallet/internal/keys"
	"github.com/AlexZinkM/qsafe-wallet/internal/lockout"
	"github.com/AlexZinkM/qsafe-wallet/internal/model"
	"github.com/AlexZinkM/qsafe-wallet/internal/session"
)

// WalletHandler exposes the wallet session over HTTP
type WalletHandler struct {
	session *session.Session
	log     *zap.Logger
}

// NewWalletHandler creates a new WalletHandler over s
func NewWalletHandler(s *session.Session, log *zap.Logger) (*WalletHandler, error) {
	if s == nil {
		return nil, errors.New("wallet session is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WalletHandler{session: s, log: log.Named("http")}, nil
}

// Create handles POST /wallet/create
// @Summary      Create new wallet
// @Description  Generates a 12-word mnemonic, derives the protected key pair and stores it encrypted. The mnemonic is returned once.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.PasswordRequest  true  "Wallet password"
// @Success      200      {object}  model.GenerateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      503      {object}  model.ErrorResponse
// @Router       /wallet/create [post]
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.PasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, err)
		return
	}
	password := []byte(req.Password)
	defer clear(password)

	phrase, address, err := h.session.Create(password)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success:       true,
		Message:       "Wallet created successfully",
		Address:       address,
		Mnemonic:      phrase,
		PasswordScore: session.PasswordScore(password),
	})
}

// Restore handles POST /wallet/restore
// @Summary      Restore wallet from mnemonic
// @Description  Rebuilds the wallet from a 12 or 24 word phrase. The backup is marked as confirmed.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.RestoreRequest  true  "Mnemonic and password"
// @Success      200      {object}  model.GenerateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/restore [post]
func (h *WalletHandler) Restore(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.RestoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, err)
		return
	}
	password := []byte(req.Password)
	defer clear(password)

	address, err := h.session.Restore(req.Mnemonic, password)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success:       true,
		Message:       "Wallet restored successfully",
		Address:       address,
		PasswordScore: session.PasswordScore(password),
	})
}

// Unlock handles POST /wallet/unlock
// @Summary      Unlock wallet
// @Description  Decrypts the stored wallet. Wrong passwords count towards a progressive lockout.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.PasswordRequest  true  "Wallet password"
// @Success      200      {object}  model.UnlockResponse
// @Failure      401      {object}  model.ErrorResponse
// @Failure      423      {object}  model.ErrorResponse
// @Router       /wallet/unlock [post]
func (h *WalletHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.PasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, err)
		return
	}
	password := []byte(req.Password)
	defer clear(password)

	address, err := h.session.Unlock(password)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.UnlockResponse{
		Success:           true,
		Address:           address,
		AttemptsRemaining: lockout.BanThreshold,
	})
}

// Lock handles POST /wallet/lock
// @Summary      Lock wallet
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.SuccessResponse
// @Router       /wallet/lock [post]
func (h *WalletHandler) Lock(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	h.session.LockWallet()
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Message: "Wallet locked"})
}

// Delete handles POST /wallet/delete
// @Summary      Delete wallet
// @Description  Removes the stored wallet. An active lockout stays in force.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.SuccessResponse
// @Failure      503  {object}  model.ErrorResponse
// @Router       /wallet/delete [post]
func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	if err := h.session.Delete(); err != nil {
		h.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Message: "Wallet deleted"})
}

// ChangePassword handles POST /wallet/password
// @Summary      Change wallet password
// @Description  Re-encrypts the stored wallet. The old password is subject to lockout.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ChangePasswordRequest  true  "Old and new password"
// @Success      200      {object}  model.SuccessResponse
// @Failure      401      {object}  model.ErrorResponse
// @Failure      423      {object}  model.ErrorResponse
// @Router       /wallet/password [post]
func (h *WalletHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, err)
		return
	}
	oldPassword, newPassword := []byte(req.OldPassword), []byte(req.NewPassword)
	defer clear(oldPassword)
	defer clear(newPassword)

	if err := h.session.Rekey(oldPassword, newPassword); err != nil {
		h.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Message: "Password changed"})
}

// Status handles GET /wallet/status
// @Summary      Wallet status
// @Description  Reports wallet presence, lock state, metadata and lockout. Needs no password.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.StatusResponse
// @Router       /wallet/status [get]
func (h *WalletHandler) Status(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	state := h.session.State()
	writeJSON(w, http.StatusOK, model.StatusResponse{
		HasWallet:         state != session.StateNoWallet,
		IsUnlocked:        state == session.StateUnlocked,
		State:             state.String(),
		Meta:              h.session.Meta(),
		AttemptsRemaining: h.session.AttemptsUntilBan(),
		Ban:               h.session.BanInfo(),
	})
}

// Sign handles POST /wallet/sign
// @Summary      Sign message
// @Description  Signs the message with the unlocked ML-DSA-65 key
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignRequest  true  "Message to sign"
// @Success      200      {object}  model.SignResponse
// @Failure      403      {object}  model.ErrorResponse
// @Router       /wallet/sign [post]
func (h *WalletHandler) Sign(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.SignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, err)
		return
	}

	sig, pub, err := h.session.Sign([]byte(req.Message))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SignResponse{
		Address:   keys.Address(pub),
		PublicKey: base64.StdEncoding.EncodeToString(pub),
		Signature: base64.StdEncoding.EncodeToString(sig),
	})
}

// AddressQR handles GET /wallet/address/qr
// @Summary      Address QR code
// @Description  Returns the wallet address and a base64 PNG QR code of it
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.AddressQRResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallet/address/qr [get]
func (h *WalletHandler) AddressQR(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	address := h.session.Address()
	if address == "" {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "no wallet stored", Code: model.CodeNoWallet})
		return
	}
	qr, err := addressQR(address)
	if err != nil {
		h.log.Error("failed to render address QR", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: err.Error(), Code: model.CodeInternal})
		return
	}
	writeJSON(w, http.StatusOK, model.AddressQRResponse{Address: address, QR: qr})
}
