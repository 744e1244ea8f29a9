package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func randomToken(n int) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return token[:n]
}

func base36Millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 36)
}

// newProductID returns "prod_<random>_<base36 millis>".
func newProductID(now time.Time) string {
	return "prod_" + randomToken(9) + "_" + base36Millis(now)
}

// newOrderID returns "ORD-<BASE36 MILLIS>-<RAND>", the format customers are
// told to search for.
func newOrderID(now time.Time) string {
	return "ORD-" + strings.ToUpper(base36Millis(now)) + "-" + strings.ToUpper(randomToken(4))
}
