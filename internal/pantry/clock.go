package pantry

import (
	"time"

	"github.com/google/uuid"
)

// Clock provides the current time
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique IDs for staged batches and sessions
type IDGenerator interface {
	Generate() string
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// UUIDGenerator generates random UUIDs
type UUIDGenerator struct{}

func (UUIDGenerator) Generate() string {
	return uuid.NewString()
}
