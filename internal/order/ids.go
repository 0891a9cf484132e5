package order

import (
	"math/rand"
	"strconv"
	"time"
)

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderID generates a display/grouping order identifier: "DK" plus the
// last 6 digits of the epoch-millisecond clock plus 4 random base-36
// characters. Not globally unique; collisions are negligible at the
// storefront's order volume.
func NewOrderID() string {
	return "DK" + timestampSuffix(6) + randBase36(4)
}

// NewPaymentID generates the matching payment identifier: "PAY" plus the
// last 8 timestamp digits plus 6 random base-36 characters.
func NewPaymentID() string {
	return "PAY" + timestampSuffix(8) + randBase36(6)
}

func timestampSuffix(n int) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(ts) > n {
		ts = ts[len(ts)-n:]
	}
	return ts
}

func randBase36(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36Upper[rand.Intn(len(base36Upper))]
	}
	return string(b)
}
