// Package auth persists the shared-session room secret in the system keyring.
package auth

import (
	"github.com/zalando/go-keyring"
)

const (
	service = "kyoku"
	user    = "room-secret"
)

// SetRoomSecret stores the secret that authenticates this client as the
// playback client of its room.
func SetRoomSecret(secret string) error {
	return keyring.Set(service, user, secret)
}

// GetRoomSecret retrieves the stored room secret.
func GetRoomSecret() (string, error) {
	return keyring.Get(service, user)
}

// DeleteRoomSecret removes the stored room secret.
func DeleteRoomSecret() error {
	return keyring.Delete(service, user)
}
