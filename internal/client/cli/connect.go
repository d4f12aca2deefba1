package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/locshare/internal/client/wallet"
)

// getSimpleText and getPassphrase are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassphrase = GetPassphrase

// Connect binds the wallet session to an account. With no argument a fresh
// account address is generated.
func (a *App) Connect(ctx context.Context, args []string) error {
	var account string
	if len(args) > 0 {
		account = args[0]
	} else {
		var err error
		account, err = wallet.NewRandomAccount()
		if err != nil {
			return err
		}
	}

	if err := a.wallet.Connect(account); err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Println("Connected as", account)
	return nil
}

// Init prompts for the network passphrase and brings up the encryption
// subsystem. Safe to repeat; a completed bring-up is a no-op.
func (a *App) Init(ctx context.Context) error {
	if !a.engine.Ready() {
		passphrase, err := getPassphrase(os.Stdout)
		if err != nil {
			return err
		}
		// The engine wipes the passphrase once the key is derived.
		a.engine.SetPassphrase(passphrase)
	}

	if err := a.coordinator.Initialize(ctx); err != nil {
		log.Printf("Initialization unsuccessful: %s", err.Error())
		return err
	}

	if a.coordinator.Ready() {
		fmt.Println("Encryption ready, contract", a.coordinator.ContractAddress())
	}
	return nil
}
