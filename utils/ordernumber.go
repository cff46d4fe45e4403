package utils

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

// Order numbers look like BO-250829-1432-118-4821:
// date (YYMMDD), hour+minute, millisecond, 4 random digits.
var orderNumberPattern = regexp.MustCompile(`^BO-\d{6}-\d{4}-\d{3}-\d{4}$`)

// GenerateOrderNumber produces a human-facing order number for the
// given creation time. Uniqueness is ultimately enforced by the unique
// index on orders.order_number.
func GenerateOrderNumber(t time.Time) string {
	return fmt.Sprintf("BO-%s-%s-%03d-%04d",
		t.Format("060102"),
		t.Format("1504"),
		t.Nanosecond()/1e6,
		rand.Intn(10000),
	)
}

// ValidOrderNumber reports whether s matches the order number format.
func ValidOrderNumber(s string) bool {
	return orderNumberPattern.MatchString(s)
}
