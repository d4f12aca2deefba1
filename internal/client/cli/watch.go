package cli

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/dmitrijs2005/locshare/internal/api"
	"github.com/gorilla/websocket"
)

// Watch tails the node's record event feed until the user presses Enter.
func (a *App) Watch(ctx context.Context) error {
	wsURL := httpToWs(a.config.NodeEndpointAddr) + "/events"

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		log.Println("Cannot connect to event feed:", err.Error())
		return err
	}
	defer conn.Close()

	fmt.Println("Watching record events, press Enter to stop...")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var ev api.Event
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			fmt.Printf("[%s] %s (height %d)\n", ev.Type, ev.RecordID, ev.Height)
		}
	}()

	if _, err := a.reader.ReadString('\n'); err != nil {
		log.Println(err.Error())
	}
	conn.Close()
	<-done
	return nil
}

func httpToWs(endpoint string) string {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return "wss://" + strings.TrimPrefix(endpoint, "https://")
	case strings.HasPrefix(endpoint, "http://"):
		return "ws://" + strings.TrimPrefix(endpoint, "http://")
	default:
		return "ws://" + endpoint
	}
}
