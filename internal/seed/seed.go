// Package seed fills an empty database with Nigerian domestic airports,
// airlines and a month of randomized flights for local development.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

const Days = 30

var Airports = []domain.Airport{
	{Code: "LOS", Name: "Murtala Muhammed International Airport", City: "Lagos", Country: "Nigeria"},
	{Code: "ABV", Name: "Nnamdi Azikiwe International Airport", City: "Abuja", Country: "Nigeria"},
	{Code: "KAN", Name: "Mallam Aminu Kano International Airport", City: "Kano", Country: "Nigeria"},
	{Code: "PHC", Name: "Port Harcourt International Airport", City: "Port Harcourt", Country: "Nigeria"},
	{Code: "CBQ", Name: "Margaret Ekpo International Airport", City: "Calabar", Country: "Nigeria"},
	{Code: "IBA", Name: "Ibadan Airport", City: "Ibadan", Country: "Nigeria"},
	{Code: "ENU", Name: "Akanu Ibiam International Airport", City: "Enugu", Country: "Nigeria"},
	{Code: "BNI", Name: "Benin Airport", City: "Benin City", Country: "Nigeria"},
	{Code: "MIU", Name: "Maiduguri International Airport", City: "Maiduguri", Country: "Nigeria"},
	{Code: "ILR", Name: "Ilorin International Airport", City: "Ilorin", Country: "Nigeria"},
}

var Airlines = []domain.Airline{
	{Code: "W3", Name: "Arik Air", Country: "Nigeria"},
	{Code: "P4", Name: "Air Peace", Country: "Nigeria"},
	{Code: "DA", Name: "Dana Air", Country: "Nigeria"},
	{Code: "OJ", Name: "Overland Airways", Country: "Nigeria"},
	{Code: "AJ", Name: "Aero Contractors", Country: "Nigeria"},
	{Code: "9J", Name: "Dana Air", Country: "Nigeria"},
	{Code: "UJ", Name: "United Nigeria Airlines", Country: "Nigeria"},
	{Code: "QM", Name: "Max Air", Country: "Nigeria"},
}

// Routes are served in both directions.
var Routes = [][2]string{
	{"LOS", "ABV"}, {"ABV", "LOS"},
	{"LOS", "PHC"}, {"PHC", "LOS"},
	{"ABV", "KAN"}, {"KAN", "ABV"},
	{"LOS", "KAN"}, {"KAN", "LOS"},
	{"ABV", "PHC"}, {"PHC", "ABV"},
	{"LOS", "ENU"}, {"ENU", "LOS"},
	{"LOS", "CBQ"}, {"CBQ", "LOS"},
	{"ABV", "ENU"}, {"ENU", "ABV"},
}

var aircraftTypes = []string{"Boeing 737-800", "Airbus A320", "Boeing 737-500", "Embraer E195"}

// economy is three times as likely as business; first is never generated.
var classWeights = []domain.ClassType{domain.ClassEconomy, domain.ClassEconomy, domain.ClassEconomy, domain.ClassBusiness}

type Result struct {
	Airports int
	Airlines int
	Flights  int
	Skipped  bool
}

type Seeder struct {
	store repository.Store
	rng   *rand.Rand
	log   logger.Logger
}

func NewSeeder(store repository.Store, rng *rand.Rand, log logger.Logger) *Seeder {
	return &Seeder{store: store, rng: rng, log: log}
}

// Run seeds everything in one transaction starting from the date of today.
// It does nothing when airports already exist.
func (s *Seeder) Run(ctx context.Context, today time.Time) (Result, error) {
	count, err := s.store.Airports().Count(ctx)
	if err != nil {
		return Result{}, err
	}
	if count > 0 {
		s.log.Warn("database already seeded, skipping", "airports", count)
		return Result{Skipped: true}, nil
	}

	var res Result
	err = s.store.InTx(ctx, func(tx repository.Store) error {
		for _, a := range Airports {
			airport := a
			if err := tx.Airports().Create(ctx, &airport); err != nil {
				return fmt.Errorf("seed airport %s: %w", a.Code, err)
			}
			res.Airports++
		}

		airlines := make([]domain.Airline, 0, len(Airlines))
		for _, a := range Airlines {
			airline := a
			if err := tx.Airlines().Create(ctx, &airline); err != nil {
				return fmt.Errorf("seed airline %s: %w", a.Code, err)
			}
			airlines = append(airlines, airline)
			res.Airlines++
		}

		for _, f := range GenerateFlights(s.rng, airlines, today, Days) {
			flight := f
			if err := tx.Flights().Create(ctx, &flight); err != nil {
				return fmt.Errorf("seed flight %s: %w", f.FlightNumber, err)
			}
			res.Flights++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.log.Info("database seeded", "airports", res.Airports, "airlines", res.Airlines, "flights", res.Flights)
	return res, nil
}

// GenerateFlights builds three to five flights per route per day for days
// days starting at the date of start.
func GenerateFlights(rng *rand.Rand, airlines []domain.Airline, start time.Time, days int) []domain.Flight {
	day0 := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	var flights []domain.Flight

	for offset := 0; offset < days; offset++ {
		date := day0.AddDate(0, 0, offset)
		for _, route := range Routes {
			n := 3 + rng.IntN(3)
			for i := 0; i < n; i++ {
				flights = append(flights, generateFlight(rng, airlines, date, route[0], route[1]))
			}
		}
	}
	return flights
}

func generateFlight(rng *rand.Rand, airlines []domain.Airline, date time.Time, origin, destination string) domain.Flight {
	airline := airlines[rng.IntN(len(airlines))]

	departure := date.Add(time.Duration(6+rng.IntN(17))*time.Hour + time.Duration(15*rng.IntN(4))*time.Minute)
	duration := 45 + rng.IntN(76)

	class := classWeights[rng.IntN(len(classWeights))]
	base := int64(35000 + rng.IntN(50001))
	var price int64
	var seats int
	switch class {
	case domain.ClassBusiness:
		price = base * 250
		seats = 20 + rng.IntN(21)
	case domain.ClassFirst:
		price = base * 400
		seats = 8 + rng.IntN(9)
	default:
		price = base * 100
		seats = 120 + rng.IntN(61)
	}
	minAvailable := seats * 3 / 10
	aircraft := aircraftTypes[rng.IntN(len(aircraftTypes))]

	return domain.Flight{
		FlightNumber:    fmt.Sprintf("%s%d", airline.Code, 100+rng.IntN(900)),
		AirlineID:       airline.ID,
		Origin:          origin,
		Destination:     destination,
		DepartureAt:     departure,
		ArrivalAt:       departure.Add(time.Duration(duration) * time.Minute),
		DurationMinutes: duration,
		ClassType:       class,
		PriceCents:      price,
		TotalSeats:      seats,
		AvailableSeats:  minAvailable + rng.IntN(seats-minAvailable+1),
		AircraftType:    &aircraft,
		Status:          domain.FlightStatusScheduled,
	}
}
