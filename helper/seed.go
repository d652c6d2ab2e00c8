package helper

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"roomstack/config"
	"roomstack/internal/domains/room/model"
	"roomstack/internal/domains/room/model/dto"
	"roomstack/internal/domains/room/repository"
	"roomstack/shared/constant"
	gDto "roomstack/shared/dto"
)

var sampleRooms = []dto.CreateRoomRequest{
	{
		Number:      "101",
		Beds:        map[string]int{"single": 1, "double": 1},
		Capacity:    3,
		NightlyRate: decimal.NewFromInt(120),
		Features:    []string{"TV", "WiFi", "Air Conditioning", "Mini Bar"},
		Status:      string(model.StatusAvailable),
		Floor:       1,
		Description: "A comfortable room with modern amenities.",
	},
	{
		Number:      "102",
		Beds:        map[string]int{"double": 1},
		Capacity:    2,
		NightlyRate: decimal.NewFromInt(180),
		Features:    []string{"TV", "WiFi", "Air Conditioning", "Mini Bar", "Room Service", "Sea View"},
		Status:      string(model.StatusOccupied),
		Floor:       1,
		Description: "A luxurious room with sea view.",
	},
	{
		Number:      "201",
		Beds:        map[string]int{"double": 1, "single": 1},
		Capacity:    3,
		NightlyRate: decimal.NewFromInt(250),
		Features:    []string{"TV", "WiFi", "Air Conditioning", "Mini Bar", "Room Service", "Mountain View", "Jacuzzi"},
		Status:      string(model.StatusAvailable),
		Floor:       2,
		Description: "An elegant room with mountain view and private jacuzzi.",
	},
}

// Seed inserts the sample rooms into an empty development database. It returns the number of
// rooms written.
func Seed(ctx context.Context, config *config.Config, rooms repository.Room) (int, error) {
	if !config.IsDevelopment() {
		log.Warn().Str("env", config.Server.Env).Msg("Seeding skipped outside development")

		return 0, nil
	}

	count, err := rooms.Count(ctx, gDto.NewFilterGroup(gDto.FilterGroupOperatorAnd))
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}

	if count > 0 {
		log.Info().Int("rooms", count).Msg("Seeding skipped, rooms already exist")

		return 0, nil
	}

	models := make([]model.Room, len(sampleRooms))
	for i, req := range sampleRooms {
		models[i] = req.ToModel(constant.ContextSystem)
	}

	if err = rooms.InsertBulk(ctx, models); err != nil {
		return 0, fmt.Errorf("failed to seed rooms: %w", err)
	}

	log.Info().Int("rooms", len(models)).Msg("Database seeded successfully")

	return len(models), nil
}
