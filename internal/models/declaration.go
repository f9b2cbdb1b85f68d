package models

import "time"

// Declaration is a federal fire disaster declaration from the geocoded
// FEMA dataset.
type Declaration struct {
	Number    string // FEMA disasterNumber
	Title     string
	County    string // upper-case county name
	Date      time.Time
	Latitude  float64
	Longitude float64
	CreatedAt time.Time // when we loaded it
}
