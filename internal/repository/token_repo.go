package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"choosecare-bff/internal/kvstore"
)

// ErrNoToken is returned when a device has no stored access token.
var ErrNoToken = errors.New("no access token stored for device")

// ErrNoDevice is returned when saving a token for an unnamed device.
var ErrNoDevice = errors.New("device id is required")

// TokenRepository keeps one access token per device in the key-value store.
type TokenRepository struct {
	store kvstore.Store
}

func NewTokenRepo(store kvstore.Store) *TokenRepository {
	return &TokenRepository{store: store}
}

func tokenKey(deviceID string) string {
	return fmt.Sprintf("device:%s:accessToken", deviceID)
}

// SaveToken stores the access token for a device, replacing any previous one
func (r *TokenRepository) SaveToken(ctx context.Context, deviceID, token string) error {
	if strings.TrimSpace(deviceID) == "" {
		return ErrNoDevice
	}
	return r.store.Set(ctx, tokenKey(deviceID), token)
}

// FindToken returns the stored token for a device
func (r *TokenRepository) FindToken(ctx context.Context, deviceID string) (string, error) {
	token, err := r.store.Get(ctx, tokenKey(deviceID))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", err
	}
	return token, nil
}

// DeleteToken forgets the device's token
func (r *TokenRepository) DeleteToken(ctx context.Context, deviceID string) error {
	return r.store.Delete(ctx, tokenKey(deviceID))
}
