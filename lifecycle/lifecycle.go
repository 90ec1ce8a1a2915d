package lifecycle

import (
	"strings"

	"resqfood-api/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.DonationStatus
	To    models.DonationStatus
	Actor string // "ngo", "society", "restaurant", "any"
}

// validTransitions is the authoritative state machine definition.
// Delivering carries no status guard: a donation can be marked delivered
// from any state, including re-delivering one already delivered.
var validTransitions = []Transition{
	// NGO or Society claims an available donation
	{From: models.StatusAvailable, To: models.StatusClaimed, Actor: "ngo"},
	{From: models.StatusAvailable, To: models.StatusClaimed, Actor: "society"},
	// Anyone with the deliver endpoint marks it delivered, from any state
	{From: models.StatusAvailable, To: models.StatusDelivered, Actor: "any"},
	{From: models.StatusClaimed, To: models.StatusDelivered, Actor: "any"},
	{From: models.StatusDelivered, To: models.StatusDelivered, Actor: "any"},
}

// CanClaim checks whether a claim by the given role is a legal transition.
// Claims are only valid from "available" and only for ngo/society roles.
func CanClaim(from models.DonationStatus, role models.UserRole) error {
	if role != models.RoleNGO && role != models.RoleSociety {
		return models.ErrInvalidClaimer
	}
	if from != models.StatusAvailable {
		return models.ErrInvalidState
	}
	return nil
}

// ClaimLabel builds the human-readable claimer label stored on the record,
// e.g. ("ngo", "Helpers Inc") → "Ngo: Helpers Inc"
func ClaimLabel(role models.UserRole, name string) string {
	r := string(role)
	if r != "" {
		r = strings.ToUpper(r[:1]) + r[1:]
	}
	return r + ": " + name
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.DonationStatus) []models.DonationStatus {
	var nexts []models.DonationStatus
	seen := map[models.DonationStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// AllTransitions returns the full state machine for documentation
func AllTransitions() []Transition {
	return validTransitions
}
