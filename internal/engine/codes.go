package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// newCode mints a human-readable, collision-resistant record code:
// prefix, timestamp, random suffix.
func newCode(prefix string) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102150405"), suffix)
}

// NewRiskCode mints a risk code ("RSK-...").
func NewRiskCode() string { return newCode("RSK") }

// NewNCCode mints a non-conformity code ("NC-...").
func NewNCCode() string { return newCode("NC") }
