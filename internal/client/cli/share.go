package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/locshare/internal/client/coordinator"
)

// Share interactively collects a new location and runs the creation pipeline.
func (a *App) Share(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Location name", os.Stdout)
	if err != nil {
		return err
	}

	lat, err := GetFloat(a.reader, "Latitude", os.Stdout)
	if err != nil {
		log.Println("Invalid latitude:", err.Error())
		return err
	}

	lng, err := GetFloat(a.reader, "Longitude", os.Stdout)
	if err != nil {
		log.Println("Invalid longitude:", err.Error())
		return err
	}

	radius, err := GetInt(a.reader, "Radius in meters (default 100)", 100, os.Stdout)
	if err != nil {
		log.Println("Invalid radius:", err.Error())
		return err
	}

	description, err := getSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		return err
	}

	id, err := a.coordinator.Create(ctx, coordinator.CreateInput{
		Name:        name,
		Description: description,
		Latitude:    lat,
		Longitude:   lng,
		Radius:      radius,
	})
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Println("Shared as", id)
	return nil
}
