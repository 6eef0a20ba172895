package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexZinkM/qsafe-wallet/internal/config"
	"github.com/AlexZinkM/qsafe-wallet/internal/credstore"
)

func rekeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rekey",
		Short: "Re-encrypts the stored wallet under a new password and the configured scrypt cost",
		RunE:  rekeyFunc,
	}
}

func rekeyFunc(c *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.store.Exists() {
		return credstore.ErrNoWallet
	}

	oldPassword, err := config.PromptForPassword("Current wallet password: ")
	if err != nil {
		return err
	}
	defer clear(oldPassword)

	newPassword, err := config.PromptForPassword("New wallet password: ")
	if err != nil {
		return err
	}
	defer clear(newPassword)

	confirm, err := config.PromptForPassword("Repeat new password: ")
	if err != nil {
		return err
	}
	defer clear(confirm)
	if !bytes.Equal(newPassword, confirm) {
		return errors.New("passwords do not match")
	}

	if err := a.store.Rekey(oldPassword, newPassword); err != nil {
		var banned *credstore.BannedError
		if errors.As(err, &banned) {
			return fmt.Errorf("%w: retry in %d seconds", credstore.ErrBanned, banned.Info.RemainingSeconds)
		}
		return err
	}

	p := a.cfg.ScryptParams()
	fmt.Fprintf(c.OutOrStdout(), "wallet re-encrypted (scrypt N=%d r=%d p=%d)\n", p.N, p.R, p.P)
	return nil
}
