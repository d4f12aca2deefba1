package cli

import (
	"bufio"
	"context"
	"log"
	"os"
)

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to LocShare CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	runREPL(ctx, a, a.getStatus, scanner)
}
