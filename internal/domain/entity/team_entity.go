package entity

type Team struct {
	ID              string    `json:"id"`
	TeamName        string    `json:"teamName"`
	TeamLeaderID    string    `json:"teamLeaderId"`
	TeamLeaderName  string    `json:"teamLeaderName"`
	TeamLeaderEmail string    `json:"teamLeaderEmail"`
	EventID         string    `json:"eventId"`
	CreatedAt       Timestamp `json:"createdAt"`
}
