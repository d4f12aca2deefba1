// Package cli implements the interactive LocShare client: a REPL over the
// record lifecycle coordinator with a wallet session and a local encryption
// engine.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/locshare/internal/client/config"
	"github.com/dmitrijs2005/locshare/internal/client/coordinator"
	"github.com/dmitrijs2005/locshare/internal/client/fhe"
	"github.com/dmitrijs2005/locshare/internal/client/ledger"
	"github.com/dmitrijs2005/locshare/internal/client/wallet"
	"github.com/dmitrijs2005/locshare/internal/logging"
)

type App struct {
	config      *config.Config
	ledger      ledger.Ledger
	wallet      *wallet.Session
	engine      *fhe.LocalEngine
	coordinator *coordinator.Coordinator
	reader      *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	l := ledger.NewHTTPLedger(c.NodeEndpointAddr, c.RequestTimeout, c.ConfirmTimeout)

	a := &App{config: c, ledger: l, reader: bufio.NewReader(os.Stdin)}

	a.wallet = wallet.NewSession(a.approveTx)
	a.engine = fhe.NewLocalEngine(nil, []byte(c.RelayerKey))

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	a.coordinator = coordinator.New(l, a.wallet, a.engine, log)

	return a, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.ledger.Close()
	a.Root(ctx)
}

// approveTx is the wallet's interactive approval step.
func (a *App) approveTx(action string) bool {
	answer, err := getSimpleText(a.reader, "Approve transaction: "+action+"? (y/n)", os.Stdout)
	if err != nil {
		return false
	}
	return answer == "y" || answer == "yes"
}

func (a *App) isConnected() bool {
	return a.wallet.Connected()
}

func (a *App) getStatus() string {
	s := ""
	if acc, err := a.wallet.Account(); err == nil {
		s = shortAccount(acc)
	}
	if a.coordinator.Ready() {
		s = s + " ready"
	}
	if n, ok := a.coordinator.Notifier().Current(); ok {
		s = s + " [" + string(n.Status) + ": " + n.Message + "]"
	}
	return s
}

func shortAccount(acc string) string {
	if len(acc) <= 10 {
		return acc
	}
	return acc[:6] + "…" + acc[len(acc)-4:]
}
