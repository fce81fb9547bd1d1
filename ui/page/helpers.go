// Package page renders the HQ dashboard as templ components.
//
// dashboard_templ.go is generated from dashboard.templ; run `templ generate`
// after editing the template.
package page

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"osirishq/internal/activity"
	"osirishq/internal/ledger"
)

func money(n int) string {
	return "$" + strconv.Itoa(n)
}

// whole drops the fraction for display; energy regenerates in small steps.
func whole(f float64) string {
	return strconv.FormatFloat(f, 'f', 0, 64)
}

func decimal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func isoTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

func newestFirst(entries []activity.Entry) []activity.Entry {
	out := slices.Clone(entries)
	slices.Reverse(out)
	return out
}

func rewardText(b ledger.Bundle) string {
	if b.IsZero() {
		return "no reward"
	}
	parts := make([]string, 0, len(ledger.Fields))
	for _, f := range b.Rewarded() {
		parts = append(parts, fmt.Sprintf("+%d %s", b.Amount(f), f))
	}
	return strings.Join(parts, ", ")
}
