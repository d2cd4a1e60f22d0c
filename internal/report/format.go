package report

import (
	"strconv"
	"time"

	"github.com/gregallentrester/anagram/internal/model"
)

// Result status labels.
const (
	statusOK          = "ok"
	statusDocumented  = "documented"
	statusDiscrepancy = "DISCREPANCY"
	statusError       = "error"
)

// resultStatus classifies a result for display.
func resultStatus(r *model.Result) string {
	switch {
	case r.Error != "":
		return statusError
	case len(r.Discrepancies) == 0:
		return statusOK
	}
	for _, d := range r.Discrepancies {
		if !d.Documented {
			return statusDiscrepancy
		}
	}
	return statusDocumented
}

// nanos formats d as an integer nanosecond count.
func nanos(d time.Duration) string {
	return strconv.FormatInt(d.Nanoseconds(), 10)
}

// signedNanos formats d with an explicit sign.
func signedNanos(d time.Duration) string {
	if d > 0 {
		return "+" + nanos(d)
	}
	return nanos(d)
}

// yesNo formats a verdict compactly.
func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
