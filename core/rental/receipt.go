package rental

import "time"

// Receipt is the priced record handed to the receipt sink when a rental's
// simulation finishes. Promotion and Fault carry the "yes"/"no" wording
// printed on the customer receipt.
type Receipt struct {
	UserID        string    `json:"user_id"`
	PersonalID    string    `json:"personal_id"`
	DriverLicense string    `json:"driver_license"`
	VehicleID     string    `json:"vehicle_id"`
	StartLocation string    `json:"start_location"`
	EndLocation   string    `json:"end_location"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	TotalPrice    float64   `json:"total_price"`
	Promotion     string    `json:"promotion"`
	Fault         string    `json:"fault"`
}
