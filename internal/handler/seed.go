package handler

import (
	"encoding/json"
	"net/http"

	"github.com/AlexZinkM/qsafe-wallet/internal/model"
)

// SeedPhrase handles GET /wallet/seed
// @Summary      Read seed phrase
// @Description  Returns the mnemonic only while it is revealed on an unlocked wallet
// @Tags         seed
// @Produce      json
// @Success      200  {object}  model.SeedPhraseResponse
// @Router       /wallet/seed [get]
func (h *WalletHandler) SeedPhrase(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	phrase, ok := h.session.SeedPhrase()
	writeJSON(w, http.StatusOK, model.SeedPhraseResponse{Revealed: ok, Mnemonic: phrase})
}

// ShowSeed handles POST /wallet/seed/show
// @Summary      Reveal seed phrase
// @Tags         seed
// @Produce      json
// @Success      200  {object}  model.SeedPhraseResponse
// @Router       /wallet/seed/show [post]
func (h *WalletHandler) ShowSeed(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	h.session.ShowSeedPhrase()
	phrase, ok := h.session.SeedPhrase()
	writeJSON(w, http.StatusOK, model.SeedPhraseResponse{Revealed: ok, Mnemonic: phrase})
}

// HideSeed handles POST /wallet/seed/hide
// @Summary      Hide seed phrase
// @Tags         seed
// @Produce      json
// @Success      200  {object}  model.SeedPhraseResponse
// @Router       /wallet/seed/hide [post]
func (h *WalletHandler) HideSeed(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	h.session.HideSeedPhrase()
	writeJSON(w, http.StatusOK, model.SeedPhraseResponse{Revealed: false})
}

// ConfirmSeed handles POST /wallet/seed/confirm
// @Summary      Confirm seed phrase backup
// @Description  Marks the backup as done and hides the phrase
// @Tags         seed
// @Produce      json
// @Success      200  {object}  model.SuccessResponse
// @Failure      403  {object}  model.ErrorResponse
// @Router       /wallet/seed/confirm [post]
func (h *WalletHandler) ConfirmSeed(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	if err := h.session.ConfirmBackup(); err != nil {
		h.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Message: "Backup confirmed"})
}

// VerifySeedWord handles POST /wallet/seed/verify
// @Summary      Verify a seed phrase word
// @Description  Checks the word at a 0-based position of the held mnemonic
// @Tags         seed
// @Accept       json
// @Produce      json
// @Param        request  body      model.VerifyWordRequest  true  "Position and word"
// @Success      200      {object}  model.VerifyWordResponse
// @Router       /wallet/seed/verify [post]
func (h *WalletHandler) VerifySeedWord(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.VerifyWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.VerifyWordResponse{Match: h.session.CheckSeedPhraseWord(req.Index, req.Word)})
}
