package entity

type RegistrationStatus string

const (
	RegistrationPending    RegistrationStatus = "PENDING"
	RegistrationConfirmed  RegistrationStatus = "CONFIRMED"
	RegistrationAttended   RegistrationStatus = "ATTENDED"
	RegistrationCancelled  RegistrationStatus = "CANCELLED"
	RegistrationWaitlisted RegistrationStatus = "WAITLISTED"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// Registration links a user, or a team led by that user, to an event.
type Registration struct {
	ID                 string             `json:"id"`
	EventID            string             `json:"eventId"`
	Event              *Event             `json:"event,omitempty"`
	UserID             string             `json:"userId"`
	User               *Profile           `json:"user,omitempty"`
	RegistrationStatus RegistrationStatus `json:"registrationStatus"`
	PaymentStatus      PaymentStatus      `json:"paymentStatus"`
	PaymentAmount      *float64           `json:"paymentAmount,omitempty"`
	IsTeamRegistration bool               `json:"isTeamRegistration"`
	TeamID             *string            `json:"teamId,omitempty"`
	TeamName           *string            `json:"teamName,omitempty"`
	TeamSize           *int               `json:"teamSize,omitempty"`
	RegisteredAt       Timestamp          `json:"registeredAt"`
	UpdatedAt          Timestamp          `json:"updatedAt"`
}

// EventKey returns the event id, preferring the embedded record.
func (r *Registration) EventKey() string {
	if r.Event != nil && r.Event.ID != "" {
		return r.Event.ID
	}
	return r.EventID
}
