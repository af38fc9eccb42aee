package domain

import "time"

type ClassType string

const (
	ClassEconomy  ClassType = "economy"
	ClassBusiness ClassType = "business"
	ClassFirst    ClassType = "first"
)

func (c ClassType) Valid() bool {
	switch c {
	case ClassEconomy, ClassBusiness, ClassFirst:
		return true
	}
	return false
}

const FlightStatusScheduled = "scheduled"

// Flight stores departure and arrival as wall-clock timestamps; the schema
// keeps date and time in separate columns.
type Flight struct {
	ID              int64
	FlightNumber    string
	AirlineID       int64
	Origin          string
	Destination     string
	DepartureAt     time.Time
	ArrivalAt       time.Time
	DurationMinutes int
	ClassType       ClassType
	PriceCents      int64
	TotalSeats      int
	AvailableSeats  int
	AircraftType    *string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type FlightSearch struct {
	Origin        string
	Destination   string
	DepartureDate time.Time
	Passengers    int
	ClassType     ClassType
}
