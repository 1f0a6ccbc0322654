package uid

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// New generates a new random unique identifier.
func New() string {
	return uuid.New().String()
}

// Deterministic derives a stable identifier from an operation kind, the
// operation timestamp and a context string. The same inputs always yield
// the same id, which keeps record keys reproducible under replay.
func Deterministic(kind string, ts time.Time, extra string) string {
	base := fmt.Sprintf("%s:%d:%s", kind, ts.UnixMicro(), extra)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(base)).String()
}

// IsValid checks if a string is a valid UUID.
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
