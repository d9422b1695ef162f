package network

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
)

const profileKey = "profile"

// Profile is what a pilot keeps between sessions.
type Profile struct {
	PilotName  string `json:"pilotName"`
	Blueprint  string `json:"blueprint"`
	LastServer string `json:"lastServer"`
	Reconnects int    `json:"reconnects"`
}

// ItemStore is the subset of gdata.Manager used for profiles.
type ItemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// OpenStore opens the per-user data directory for appName.
func OpenStore(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open profile store: %w", err)
	}
	return m, nil
}

// LoadProfile returns the saved profile, or fallback when none is saved yet.
func LoadProfile(store ItemStore, fallback Profile) (Profile, error) {
	data, err := store.LoadItem(profileKey)
	if err != nil {
		return fallback, fmt.Errorf("load profile: %w", err)
	}
	if data == nil {
		return fallback, nil
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return fallback, fmt.Errorf("parse profile: %w", err)
	}
	return p, nil
}

// SaveProfile writes p to the store.
func SaveProfile(store ItemStore, p Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("serialize profile: %w", err)
	}
	if err := store.SaveItem(profileKey, data); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
