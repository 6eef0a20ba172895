package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/AlexZinkM/qsafe-wallet/internal/credstore"
	"github.com/AlexZinkM/qsafe-wallet/internal/lockout"
	"github.com/AlexZinkM/qsafe-wallet/internal/model"
)

func statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Prints wallet metadata and lockout state",
		RunE:  statusFunc,
	}
}

func statusFunc(c *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	resp := model.StatusResponse{
		HasWallet: a.store.Exists(),
		State:     "no_wallet",
	}
	if resp.HasWallet {
		resp.State = "locked"
	}

	meta, err := a.store.Meta()
	switch {
	case err == nil:
		resp.Meta = meta
	case !errors.Is(err, credstore.ErrNoWallet):
		return err
	}

	rec, err := a.store.FailureRecord()
	if err != nil {
		return err
	}
	resp.AttemptsRemaining = lockout.AttemptsUntilBan(rec)
	if resp.Ban, err = a.store.BanInfo(); err != nil {
		return err
	}

	enc := json.NewEncoder(c.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
