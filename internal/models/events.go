package models

// Event is an upcoming performance from the events source.
type Event struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Venue       string `json:"venue,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	Date        string `json:"date,omitempty"`
	URI         string `json:"uri,omitempty"`
}
