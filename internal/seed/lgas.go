package seed

import (
	"context"
	"fmt"

	"ecsrs/internal/store"
	"ecsrs/pkg/types"
)

// SeedLGAs upserts the local government areas served by the portal.
// This file is the source of truth for the LGA list:
// - Inserts areas that don't exist yet
// - Updates areas whose name changed (matched on code)
//
// To generate new IDs: `go run ./cmd/ecsrs nanoid`
func SeedLGAs(ctx context.Context, repo *store.LGARepository) error {
	lgas := []types.LGA{
		{
			ID:   "Jk3mVbXq8wRtYp2NcLdHfGz5QsAe7Bu0",
			Code: "PHALGA",
			Name: "Port Harcourt City",
		},
		{
			ID:   "Wn5tRcYx2qPvKm8BdFgHj3LzQa6Se9U1",
			Code: "OBALGA",
			Name: "Obio-Akpor",
		},
		{
			ID:   "Tp7yUeWq4rXsNb1McKdJh6GzVf8Ao2I3",
			Code: "ELEME",
			Name: "Eleme",
		},
		{
			ID:   "Zq9wOaYe6tUvPc3RdNfLj8HxKm1Bs4G5",
			Code: "IKWERRE",
			Name: "Ikwerre",
		},
		{
			ID:   "Xs1uIcAq8yWtRe5TfPdNj0JzLm3Bv6H7",
			Code: "OYIGBO",
			Name: "Oyigbo",
		},
		{
			ID:   "Vu3oEcIq0aYtTw7RfXdPj2LzNm5Bs8J9",
			Code: "OKRIKA",
			Name: "Okrika",
		},
		{
			ID:   "Bw5qGcKe2sAvVy9TfZdRj4NzPm7Ds0L1",
			Code: "TAI",
			Name: "Tai",
		},
		{
			ID:   "Dy7sIeMq4uCxXa1VfBdTj6PzRm9Fs2N3",
			Code: "GOKANA",
			Name: "Gokana",
		},
		{
			ID:   "Fa9uKgOs6wEzZc3XfDdVj8RzTm1Hs4P5",
			Code: "KHANA",
			Name: "Khana",
		},
		{
			ID:   "Hc1wMiQu8yGbBe5ZfFdXj0TzVm3Js6R7",
			Code: "DEGEMA",
			Name: "Degema",
		},
		{
			ID:   "Je3yOkSw0aIdDg7BfHdZj2VzXm5Ls8T9",
			Code: "BONNY",
			Name: "Bonny",
		},
		{
			ID:   "Lg5aQmUy2cKfFi9DfJdBj4XzZm7Ns0V1",
			Code: "EMOHUA",
			Name: "Emohua",
		},
	}

	for _, lga := range lgas {
		lga := lga
		if err := repo.UpsertLGA(ctx, &lga); err != nil {
			return fmt.Errorf("failed to upsert lga %s: %w", lga.Code, err)
		}
	}

	return nil
}
