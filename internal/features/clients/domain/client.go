package domain

import (
	"errors"
	"strings"
	"time"
)

// MaxBranches is the number of branch columns (A, B, C) an order line has.
const MaxBranches = 3

var (
	ErrClientNotFound = errors.New("client not found")
	ErrDuplicateCode  = errors.New("client with that code already exists")
	ErrClientInUse    = errors.New("client has existing orders")
	ErrClientInactive = errors.New("client is inactive")
	ErrMissingField   = errors.New("code and name are required")
	ErrNoActiveClient = errors.New("no active client")
)

// Client is a buyer account with one to three branch locations.
type Client struct {
	ID          uint      `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Active      bool      `json:"active"`
	BranchCount int       `json:"branch_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NormalizeBranchCount returns n when it is 1, 2 or 3 and 1 otherwise.
func NormalizeBranchCount(n int) int {
	if n < 1 || n > MaxBranches {
		return 1
	}
	return n
}

// Normalize trims text fields and coerces the branch count.
func (c *Client) Normalize() {
	c.Code = strings.TrimSpace(c.Code)
	c.Name = strings.TrimSpace(c.Name)
	c.BranchCount = NormalizeBranchCount(c.BranchCount)
}

// Validate checks a normalized client.
func (c *Client) Validate() error {
	if c.Code == "" || c.Name == "" {
		return ErrMissingField
	}
	return nil
}
