package domain

import "time"

type Airport struct {
	ID        int64
	Code      string
	Name      string
	City      string
	Country   string
	Timezone  *string
	CreatedAt time.Time
}

type Airline struct {
	ID        int64
	Code      string
	Name      string
	Country   string
	CreatedAt time.Time
}
