package cli

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dmitrijs2005/locshare/internal/client/coordinator"
)

// Refresh synchronizes the directory from the ledger.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.coordinator.Refresh(ctx); err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Println("Directory updated.")
	return nil
}

func (a *App) List(ctx context.Context) error {
	snap := a.coordinator.Snapshot()
	if len(snap.All) == 0 {
		fmt.Println("No locations yet. Try 'refresh'.")
		return nil
	}
	for _, r := range snap.All {
		fmt.Println(formatRecord(r))
	}
	return nil
}

func (a *App) Mine(ctx context.Context) error {
	recent := a.coordinator.Snapshot().RecentOwn(3)
	if len(recent) == 0 {
		fmt.Println("You have not shared any locations yet.")
		return nil
	}
	for _, r := range recent {
		fmt.Println(formatRecord(r))
	}
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	s := a.coordinator.Snapshot().Stats
	fmt.Printf("total: %d  verified: %d  mine: %d\n", s.Total, s.Verified, s.OwnedCount)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: show <id>")
		return nil
	}
	for _, r := range a.coordinator.Snapshot().All {
		if r.ID == args[0] {
			fmt.Println(formatRecordFull(r))
			return nil
		}
	}
	fmt.Println("Not found:", args[0])
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	term := strings.Join(args, " ")
	matches := a.coordinator.Snapshot().Search(term)
	if len(matches) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, r := range matches {
		fmt.Println(formatRecord(r))
	}
	return nil
}

func formatRecord(r *coordinator.Record) string {
	coords := fmt.Sprintf("lng %.6f, lat hidden", r.Longitude)
	if r.Verified {
		coords = fmt.Sprintf("lng %.6f, lat %.6f", r.Longitude, r.Latitude)
	}
	return fmt.Sprintf("%s  %-20s  %s  (radius %dm)", r.ID, r.Name, coords, r.Radius)
}

func formatRecordFull(r *coordinator.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "id:          %s\n", r.ID)
	fmt.Fprintf(&b, "name:        %s\n", r.Name)
	if r.Description != "" {
		fmt.Fprintf(&b, "description: %s\n", r.Description)
	}
	fmt.Fprintf(&b, "creator:     %s\n", r.Creator)
	fmt.Fprintf(&b, "created:     %s\n", time.Unix(r.CreatedAt, 0).Format(time.RFC3339))
	fmt.Fprintf(&b, "radius:      %dm\n", r.Radius)
	fmt.Fprintf(&b, "verified:    %v\n", r.Verified)
	if r.Verified {
		fmt.Fprintf(&b, "coordinates: %.6f, %.6f", r.Latitude, r.Longitude)
	} else {
		fmt.Fprintf(&b, "coordinates: hidden, %.6f", r.Longitude)
	}
	return b.String()
}
