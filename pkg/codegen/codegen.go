// Package codegen issues the human-readable identifiers printed on order
// paperwork: partner tracking codes (JLX######) and order numbers
// (ORD-YYYY-####). The codes are lookup keys, not secrets; uniqueness is
// enforced by the database, not here.
package codegen

import (
	"fmt"
	"math/rand"
	"time"
)

// GeneratePartnerCode returns "JLX" followed by a 6-digit random number.
func GeneratePartnerCode() string {
	return fmt.Sprintf("JLX%d", 100000+rand.Intn(900000))
}

// GenerateOrderNumber returns "ORD-<year>-<4 digit random number>" for the
// current year.
func GenerateOrderNumber() string {
	year := time.Now().Year()
	return fmt.Sprintf("ORD-%d-%d", year, 1000+rand.Intn(9000))
}
