package cli

import (
	"context"
	"fmt"
	"log"
)

// Decrypt runs the decryption-verification round for one record.
func (a *App) Decrypt(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: decrypt <id>")
		return nil
	}
	id := args[0]

	if a.coordinator.DecryptInFlight(id) {
		fmt.Println("Decryption already in progress for", id)
		return nil
	}

	revealed, err := a.coordinator.Decrypt(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if revealed == nil {
		// Benign race: another verifier got there first; the refreshed
		// directory holds the cleartext.
		fmt.Println("Already verified; see 'show", id+"'")
		return nil
	}

	fmt.Printf("Revealed coordinates: %.6f, %.6f\n", revealed.Latitude, revealed.Longitude)
	return nil
}
