package usecase

import (
	"fmt"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
)

type SeatStatus string

const (
	SeatStatusBooked    SeatStatus = "booked"
	SeatStatusSelected  SeatStatus = "selected"
	SeatStatusAvailable SeatStatus = "available"
)

type Seat struct {
	Label  string // "A1"
	Number int
	Price  float64
	Status SeatStatus
}

type SeatMapRow struct {
	RowID string
	Label string
	Price float64
	Seats []Seat
}

// SeatMap is the derived view of one showtime's seats. It is recomputed
// from the booked set on every read, never cached.
type SeatMap struct {
	Rows          []SeatMapRow
	TotalSeats    int
	SelectedTotal float64
}

// seatRowsOrDefault applies the default configuration to movies that
// declare no seat rows.
func seatRowsOrDefault(movie *entity.Movie) []entity.SeatRow {
	if len(movie.SeatRows) > 0 {
		return movie.SeatRows
	}
	return entity.DefaultSeatRows()
}

// BuildSeatMap derives the per-seat tri-state view for one showtime.
// booked is the set of seat labels claimed by confirmed bookings,
// selected is the caller's in-progress selection. A seat never moves to
// selected while booked: if the two sets overlap, the overlap is
// returned as a *repository.SeatConflictError. Selected seats that do
// not exist in the configuration are rejected too.
// SelectedTotal sums the row price of each selected seat, so mixed
// tiers (VIP next to Regular) price correctly.
func BuildSeatMap(rows []entity.SeatRow, booked, selected []string) (*SeatMap, error) {
	bookedSet := make(map[string]bool, len(booked))
	for _, label := range booked {
		bookedSet[label] = true
	}

	selectedSet := make(map[string]bool, len(selected))
	var contested []string
	for _, label := range selected {
		if bookedSet[label] {
			contested = append(contested, label)
			continue
		}
		selectedSet[label] = true
	}
	if len(contested) > 0 {
		return nil, &repository.SeatConflictError{Seats: contested}
	}

	seatMap := &SeatMap{}
	known := make(map[string]bool)

	for _, row := range rows {
		mapRow := SeatMapRow{
			RowID: row.RowID,
			Label: row.Label,
			Price: row.Price,
			Seats: make([]Seat, 0, row.SeatCount),
		}

		for n := 1; n <= row.SeatCount; n++ {
			label := fmt.Sprintf("%s%d", row.RowID, n)
			known[label] = true

			status := SeatStatusAvailable
			switch {
			case bookedSet[label]:
				status = SeatStatusBooked
			case selectedSet[label]:
				status = SeatStatusSelected
				seatMap.SelectedTotal += row.Price
			}

			mapRow.Seats = append(mapRow.Seats, Seat{
				Label:  label,
				Number: n,
				Price:  row.Price,
				Status: status,
			})
		}

		seatMap.TotalSeats += row.SeatCount
		seatMap.Rows = append(seatMap.Rows, mapRow)
	}

	for _, label := range selected {
		if !known[label] {
			return nil, fmt.Errorf("seat %s does not exist: %w", label, ErrInvalidInput)
		}
	}

	return seatMap, nil
}

// SeatPrices resolves the row price for each requested seat label.
// Unknown labels are invalid input.
func SeatPrices(rows []entity.SeatRow, seats []string) (map[string]float64, error) {
	prices := make(map[string]float64, len(seats))

	byLabel := make(map[string]float64)
	for _, row := range rows {
		for n := 1; n <= row.SeatCount; n++ {
			byLabel[fmt.Sprintf("%s%d", row.RowID, n)] = row.Price
		}
	}

	for _, label := range seats {
		price, ok := byLabel[label]
		if !ok {
			return nil, fmt.Errorf("seat %s does not exist: %w", label, ErrInvalidInput)
		}
		prices[label] = price
	}

	return prices, nil
}
