package entity

// College is an institution hosting events.
type College struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Location        string    `json:"location"`
	Description     *string   `json:"description,omitempty"`
	LogoURL         *string   `json:"logoUrl,omitempty"`
	Website         *string   `json:"website,omitempty"`
	EstablishedYear *int      `json:"establishedYear,omitempty"`
	ContactEmail    *string   `json:"contactEmail,omitempty"`
	ContactPhone    *string   `json:"contactPhone,omitempty"`
	Address         *string   `json:"address,omitempty"`
	CreatedAt       Timestamp `json:"createdAt"`
	UpdatedAt       Timestamp `json:"updatedAt"`
}
