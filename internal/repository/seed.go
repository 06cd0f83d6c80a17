package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"conciergerie/internal/core"
)

// Seed is the JSON layout of a seed file.
type Seed struct {
	Users      []core.User     `json:"users"`
	Properties []core.Property `json:"properties"`
	Bookings   []core.Booking  `json:"bookings"`
	Documents  []core.Document `json:"documents"`
	CheckIns   []core.CheckIn  `json:"checkIns"`
	Messages   []core.Message  `json:"messages"`
}

func ReadSeedFile(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return seed, nil
}
