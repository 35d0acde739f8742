package entity

type ParticipationType string

const (
	ParticipationIndividual ParticipationType = "INDIVIDUAL"
	ParticipationTeam       ParticipationType = "TEAM"
	ParticipationBoth       ParticipationType = "BOTH"
)

type EventStatus string

const (
	EventDraft     EventStatus = "DRAFT"
	EventPublished EventStatus = "PUBLISHED"
	EventCompleted EventStatus = "COMPLETED"
	EventCancelled EventStatus = "CANCELLED"
)

// Event mirrors the backend event record. CurrentAttendees <= MaxAttendees is
// expected but never checked here.
type Event struct {
	ID                   string            `json:"id"`
	Title                string            `json:"title"`
	Description          *string           `json:"description,omitempty"`
	ImageURL             *string           `json:"imageUrl,omitempty"`
	CategoryID           string            `json:"categoryId"`
	Category             *Category         `json:"category,omitempty"`
	CollegeID            *string           `json:"collegeId,omitempty"`
	College              *College          `json:"college,omitempty"`
	OrganizerID          string            `json:"organizerId"`
	Organizer            *Profile          `json:"organizer,omitempty"`
	StartDate            Timestamp         `json:"startDate"`
	EndDate              Timestamp         `json:"endDate"`
	Location             string            `json:"location"`
	VenueDetails         *string           `json:"venueDetails,omitempty"`
	ParticipationType    ParticipationType `json:"participationType"`
	EventStatus          EventStatus       `json:"eventStatus"`
	MinTeamSize          *int              `json:"minTeamSize,omitempty"`
	MaxTeamSize          *int              `json:"maxTeamSize,omitempty"`
	MaxAttendees         *int              `json:"maxAttendees,omitempty"`
	CurrentAttendees     int               `json:"currentAttendees"`
	RegistrationDeadline *Timestamp        `json:"registrationDeadline,omitempty"`
	Featured             bool              `json:"featured"`
	Global               bool              `json:"global"`
	IsFree               bool              `json:"isFree"`
	Price                *float64          `json:"price,omitempty"`
	Currency             *string           `json:"currency,omitempty"`
	CreatedAt            Timestamp         `json:"createdAt"`
	UpdatedAt            Timestamp         `json:"updatedAt"`
}

// CollegeKey returns the id of the hosting college, preferring the embedded
// record. Empty when the event has no college.
func (e *Event) CollegeKey() string {
	if e.College != nil && e.College.ID != "" {
		return e.College.ID
	}
	if e.CollegeID != nil {
		return *e.CollegeID
	}
	return ""
}

// CategoryKey returns the category id, preferring the embedded record.
func (e *Event) CategoryKey() string {
	if e.Category != nil && e.Category.ID != "" {
		return e.Category.ID
	}
	return e.CategoryID
}
