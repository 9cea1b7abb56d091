package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Tier is the subscription level controlling a user's storage ceiling.
type Tier string

const (
	TierPersonal     Tier = "Personal"
	TierProfessional Tier = "Professional"
	TierEnterprise   Tier = "Enterprise"
)

// Valid reports whether t is one of the known subscription tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierPersonal, TierProfessional, TierEnterprise:
		return true
	}
	return false
}

// User represents a vault account.
// PasswordHash and the card fields never leave the server; they are excluded
// from JSON entirely rather than relying on handlers to strip them.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Tier         Tier      `json:"tier"`
	CardNumber   string    `json:"-"`
	CardExpiry   string    `json:"-"`
	CardCVC      string    `json:"-"`
	IsPaid       bool      `json:"is_paid"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeEmail case-folds and trims an email address. All lookups and the
// unique index operate on this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// StorageLimit is a tagged variant: either a bounded megabyte ceiling or
// unlimited. Modeling it this way keeps percent computation a total function
// instead of branching on a numeric-or-string union.
type StorageLimit struct {
	MB        int64
	Unlimited bool
}

// Bounded returns a finite storage limit of mb megabytes.
func Bounded(mb int64) StorageLimit { return StorageLimit{MB: mb} }

// UnlimitedLimit is the Enterprise sentinel.
var UnlimitedLimit = StorageLimit{Unlimited: true}

// Percent returns how full the vault is, as a percentage clamped to [0,100]
// and rounded to one decimal. Unlimited limits always report 0 so a usage bar
// never fills.
func (l StorageLimit) Percent(usedMB float64) float64 {
	if l.Unlimited || l.MB <= 0 {
		return 0
	}
	p := usedMB / float64(l.MB) * 100
	if p > 100 {
		p = 100
	}
	return math.Round(p*10) / 10
}

// MarshalJSON renders a bounded limit as its megabyte count and the unlimited
// variant as the string "Unlimited", matching what clients expect.
func (l StorageLimit) MarshalJSON() ([]byte, error) {
	if l.Unlimited {
		return json.Marshal("Unlimited")
	}
	return json.Marshal(l.MB)
}

// UnmarshalJSON accepts either form produced by MarshalJSON.
func (l *StorageLimit) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "Unlimited" {
			return fmt.Errorf("invalid storage limit %q", s)
		}
		*l = UnlimitedLimit
		return nil
	}
	var mb int64
	if err := json.Unmarshal(data, &mb); err != nil {
		return err
	}
	*l = Bounded(mb)
	return nil
}
