package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/qsafe-wallet/internal/credstore"
	"github.com/AlexZinkM/qsafe-wallet/internal/mnemonic"
	"github.com/AlexZinkM/qsafe-wallet/internal/model"
	"github.com/AlexZinkM/qsafe-wallet/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: model.CodeBadRequest})
}

// allow rejects requests with any other method.
func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed. Should be "+method, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// writeSessionError maps the reason of a failed session call to a status
// code. Error texts never contain secrets, so they are returned as is.
// Lockout details come from err itself, never from a later session read.
func (h *WalletHandler) writeSessionError(w http.ResponseWriter, err error) {
	resp := model.ErrorResponse{Code: model.CodeInternal}
	status := http.StatusInternalServerError
	if err == nil {
		err = session.ErrInternal
	}

	var (
		banned *credstore.BannedError
		wrong  *credstore.WrongPasswordError
	)
	switch {
	case errors.As(err, &banned):
		status, resp.Code = http.StatusLocked, model.CodeBanned
		ban := banned.Info
		resp.Ban = &ban
	case errors.As(err, &wrong):
		status, resp.Code = http.StatusUnauthorized, model.CodeDecryptionFailed
		left := wrong.AttemptsUntilBan()
		resp.AttemptsRemaining = &left
		resp.Ban = wrong.Ban
	case errors.Is(err, credstore.ErrDecryptionFailed):
		status, resp.Code = http.StatusUnauthorized, model.CodeDecryptionFailed
	case errors.Is(err, mnemonic.ErrInvalidMnemonic):
		status, resp.Code = http.StatusBadRequest, model.CodeInvalidMnemonic
	case errors.Is(err, session.ErrWeakPassword):
		status, resp.Code = http.StatusBadRequest, model.CodeWeakPassword
	case errors.Is(err, session.ErrEmptyPassword):
		status, resp.Code = http.StatusBadRequest, model.CodeBadRequest
	case errors.Is(err, credstore.ErrNoWallet):
		status, resp.Code = http.StatusNotFound, model.CodeNoWallet
	case errors.Is(err, session.ErrLocked):
		status, resp.Code = http.StatusForbidden, model.CodeLocked
	case errors.Is(err, credstore.ErrStorageUnavailable):
		status, resp.Code = http.StatusServiceUnavailable, model.CodeStorageUnavailable
	}

	resp.Error = err.Error()
	writeJSON(w, status, resp)
}
