package clock

import (
	"time"

	"github.com/rentchain/rentdeploy/internal/usecase"
)

// SystemClock reads the wall clock
type SystemClock struct{}

// NewSystemClock creates a new system clock
func NewSystemClock() SystemClock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now()
}

var _ usecase.Clock = SystemClock{}
