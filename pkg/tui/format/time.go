package format

import (
	"time"

	"k8s.io/apimachinery/pkg/util/duration"
)

// createdLayout is the human-readable form of the Created column,
// e.g. "Jun 01 2025 14:32".
const createdLayout = "Jan 02 2006 15:04"

// Created renders an RFC3339 creation timestamp in the viewer's local
// timezone. Unparseable input is shown as-is rather than hidden.
func Created(rfc3339 string) string {
	return CreatedIn(rfc3339, time.Local)
}

// CreatedIn renders a creation timestamp in an explicit location.
func CreatedIn(rfc3339 string, loc *time.Location) string {
	if rfc3339 == "" {
		return ""
	}
	parsed, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return rfc3339
	}
	return parsed.In(loc).Format(createdLayout)
}

// Age renders the elapsed time since an RFC3339 timestamp in the compact
// kubectl style: 45s, 90m, 3h, 7d.
func Age(rfc3339 string, now time.Time) string {
	if rfc3339 == "" {
		return ""
	}
	parsed, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return ""
	}

	elapsed := now.Sub(parsed)
	if elapsed < 0 {
		elapsed = 0
	}

	return duration.HumanDuration(elapsed)
}
