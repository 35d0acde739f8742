package entity

type Role string

const (
	RoleAttendee  Role = "ATTENDEE"
	RoleOrganizer Role = "ORGANIZER"
	RoleAdmin     Role = "ADMIN"
)

// Profile is the application-level user record. UserID links it to the
// identity provider's user.
type Profile struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Email            string    `json:"email"`
	FullName         string    `json:"fullName"`
	Role             Role      `json:"role"`
	CollegeID        *string   `json:"collegeId,omitempty"`
	College          *College  `json:"college,omitempty"`
	OrganizationName *string   `json:"organizationName,omitempty"`
	Phone            *string   `json:"phone,omitempty"`
	Bio              *string   `json:"bio,omitempty"`
	Website          *string   `json:"website,omitempty"`
	AvatarURL        *string   `json:"avatarUrl,omitempty"`
	CreatedAt        Timestamp `json:"createdAt"`
	UpdatedAt        Timestamp `json:"updatedAt"`
}

// HasCollege reports whether the profile is attached to a college.
func (p *Profile) HasCollege() bool {
	return p != nil && p.CollegeID != nil && *p.CollegeID != ""
}
