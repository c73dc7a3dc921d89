package statemachine

import (
	"errors"

	"dinedash-api/models"
)

// Actor names who may drive a transition.
const (
	ActorCustomer   = "customer"
	ActorRestaurant = "restaurant"
	ActorDelivery   = "delivery"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// validTransitions is the authoritative state machine definition. Every
// transition is one-way; there is no path back to an earlier state.
var validTransitions = []Transition{
	// Customer checks out the cart
	{From: models.StatusNotPlacedYet, To: models.StatusPlaced, Actor: ActorCustomer},
	// Restaurant finishes preparing the order
	{From: models.StatusPlaced, To: models.StatusReadyForPickup, Actor: ActorRestaurant},
	// Contractor claims the order for delivery
	{From: models.StatusReadyForPickup, To: models.StatusInTransit, Actor: ActorDelivery},
	// Contractor hands the order to the customer
	{From: models.StatusInTransit, To: models.StatusDelivered, Actor: ActorDelivery},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
