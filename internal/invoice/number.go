package invoice

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNegativeNetDays = errors.New("negative net days")

// NewInvoiceNumber returns a date-stamped identifier with a random suffix,
// e.g. "INV-20240601-9F2C41A8". Numbers are distinguishable but carry no
// global sequence guarantee; invoice creation is not concurrent in this
// system's usage model.
func NewInvoiceNumber(issue time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return "INV-" + issue.Format("20060102") + "-" + suffix
}

// DueDate adds netDays calendar days to the issue date.
func DueDate(issue time.Time, netDays int) (time.Time, error) {
	if netDays < 0 {
		return time.Time{}, ErrNegativeNetDays
	}
	return issue.AddDate(0, 0, netDays), nil
}
