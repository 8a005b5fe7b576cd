package usecase

import (
	"errors"
	"testing"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSeatMapTriState(t *testing.T) {
	rows := entity.DefaultSeatRows()

	seatMap, err := BuildSeatMap(rows, []string{"A1"}, []string{"A2", "C3"})
	require.NoError(t, err)

	require.Len(t, seatMap.Rows, 5)
	assert.Equal(t, 40, seatMap.TotalSeats)

	statuses := map[string]SeatStatus{}
	for _, row := range seatMap.Rows {
		for _, seat := range row.Seats {
			statuses[seat.Label] = seat.Status
		}
	}

	assert.Equal(t, SeatStatusBooked, statuses["A1"])
	assert.Equal(t, SeatStatusSelected, statuses["A2"])
	assert.Equal(t, SeatStatusSelected, statuses["C3"])
	assert.Equal(t, SeatStatusAvailable, statuses["B5"])

	// one VIP at 15 plus one Regular at 12
	assert.Equal(t, 27.0, seatMap.SelectedTotal)
}

func TestBuildSeatMapMixedTierTotal(t *testing.T) {
	rows := entity.DefaultSeatRows()

	seatMap, err := BuildSeatMap(rows, nil, []string{"A1", "A2", "C3"})
	require.NoError(t, err)

	// 15 + 15 + 12
	assert.Equal(t, 42.0, seatMap.SelectedTotal)
}

func TestBuildSeatMapConflict(t *testing.T) {
	rows := entity.DefaultSeatRows()

	_, err := BuildSeatMap(rows, []string{"A1", "B2"}, []string{"A1", "C3"})
	require.Error(t, err)

	var conflict *repository.SeatConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []string{"A1"}, conflict.Seats)
	assert.True(t, errors.Is(err, repository.ErrConflict))
}

func TestBuildSeatMapUnknownSeat(t *testing.T) {
	rows := entity.DefaultSeatRows()

	_, err := BuildSeatMap(rows, nil, []string{"Z9"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	// A9 is one past the end of an 8-seat row
	_, err = BuildSeatMap(rows, nil, []string{"A9"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestSeatPrices(t *testing.T) {
	rows := entity.DefaultSeatRows()

	prices, err := SeatPrices(rows, []string{"A1", "A2", "C3"})
	require.NoError(t, err)

	total := 0.0
	for _, p := range prices {
		total += p
	}
	assert.Equal(t, 42.0, total)

	_, err = SeatPrices(rows, []string{"F1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
