package convert

import (
	"github.com/ledgercast-dev/ledgercast/internal/accounts"
	"github.com/ledgercast-dev/ledgercast/internal/normalize"
)

// Rejection is one skipped row with the raw cells kept for the audit log.
type Rejection struct {
	Row    int
	Reason normalize.Reason
	Detail string

	Organization string
	Amount       string
	Date         string
	Note         string
}

// Report summarizes one conversion run. Skips are expected for dirty
// input and do not fail the run; internal errors do.
type Report struct {
	Accepted   int
	Skipped    int
	Reasons    map[normalize.Reason]int
	Rejections []Rejection
	Collisions []accounts.Collision

	// Internal holds should-never-happen consistency failures (postings
	// that did not balance). Any entry makes the run exit nonzero.
	Internal []string
}

func newReport() *Report {
	return &Report{Reasons: make(map[normalize.Reason]int)}
}

func (r *Report) reject(rej Rejection) {
	r.Skipped++
	r.Reasons[rej.Reason]++
	r.Rejections = append(r.Rejections, rej)
}

// Fatal reports whether the run hit an internal-consistency failure.
func (r *Report) Fatal() bool {
	return len(r.Internal) > 0
}
