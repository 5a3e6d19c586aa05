package domain

import (
	"errors"
	"strings"
)

// MaxOwnerLength bounds the owner key stored in Redis.
const MaxOwnerLength = 64

var (
	ErrInvalidOwner = errors.New("owner must be 1 to 64 characters without spaces")
)

// Favorite reports whether an owner marked a product.
type Favorite struct {
	Owner     string `json:"owner"`
	ProductID uint   `json:"product_id"`
	Favorite  bool   `json:"favorite"`
}

// NormalizeOwner trims and validates an owner key.
func NormalizeOwner(owner string) (string, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" || len(owner) > MaxOwnerLength || strings.ContainsAny(owner, " \t\r\n") {
		return "", ErrInvalidOwner
	}
	return owner, nil
}
