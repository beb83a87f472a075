package services

import "errors"

// Client-fault errors: surfaced to the caller, never retried automatically.
var (
	// ErrNotOwned is the ownership error: the player has no ownership row
	// for the perk, or owns zero units.
	ErrNotOwned = errors.New("perk not owned or out of stock")

	// ErrPerkInactive means the catalog perk is disabled and cannot be activated.
	ErrPerkInactive = errors.New("perk is disabled in the catalog")

	ErrPerkNotFound  = errors.New("perk not found")
	ErrBoostNotFound = errors.New("active boost not found")
)
