package domain

import "fmt"

// Participant is a self-reported attendee record. Within one event the
// policy-selected identifier field is unique: a later submission with a
// matching identifier replaces the earlier record's full content.
// swagger:model Participant
type Participant struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	HasCar        bool   `json:"hasCar"`
	CanGiveRides  bool   `json:"canGiveRides"`
	MaxPassengers int    `json:"maxPassengers"`
}

// InvitedParticipant is a pre-invitation stub sourced from an uploaded
// roster. Being invited does not imply having joined. Immutable once stored.
// swagger:model InvitedParticipant
type InvitedParticipant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IdentifierPolicy is the deployment-fixed choice of which contact field
// uniquely identifies a participant within an event. It is resolved once at
// startup, never per request.
type IdentifierPolicy string

// Supported identifier policies.
const (
	IdentifyByEmail IdentifierPolicy = "email"
	IdentifyByPhone IdentifierPolicy = "phone"
)

// NewIdentifierPolicy parses a configured field name into a policy.
func NewIdentifierPolicy(field string) (IdentifierPolicy, error) {
	switch IdentifierPolicy(field) {
	case IdentifyByEmail:
		return IdentifyByEmail, nil
	case IdentifyByPhone:
		return IdentifyByPhone, nil
	default:
		return "", fmt.Errorf("unknown participant identifier field %q", field)
	}
}

// IdentifierOf returns the participant's value for the policy-selected
// field. Matching is exact and case-sensitive.
func (p IdentifierPolicy) IdentifierOf(participant *Participant) string {
	if p == IdentifyByPhone {
		return participant.Phone
	}
	return participant.Email
}
