package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ==================== SESSION TOKEN ====================

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== BOOKING REFERENCE ====================

// GenerateBookingReference creates a human-facing booking code.
// Format: "BK" + last 6 digits of unix millis + random [0,1000),
// which always matches ^BK\d{6,9}$. Uniqueness is enforced by the
// store, callers retry on a reference collision.
func GenerateBookingReference() string {
	millis := time.Now().UnixMilli()
	tail := millis % 1_000_000

	return fmt.Sprintf("BK%06d%d", tail, rand.Intn(1000))
}

// ==================== QUERY HELPERS ====================

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
