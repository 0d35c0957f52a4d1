package lead

import "slices"

// Stats summarizes a collection for the dashboard counters.
type Stats struct {
	Total         int            `json:"total"`
	ByStatus      map[Status]int `json:"byStatus"`
	Promising     int            `json:"promising"`
	NeedsFollowUp int            `json:"needsFollowUp"`
}

// ComputeStats counts records by status and prospect level. Every status
// appears in ByStatus, with zero when unused.
func ComputeStats(records []Record) Stats {
	st := Stats{
		Total:    len(records),
		ByStatus: make(map[Status]int, len(statusEntries)),
	}
	for _, s := range Statuses() {
		st.ByStatus[s] = 0
	}
	for _, r := range records {
		st.ByStatus[r.Status]++
		switch r.ProspectLevel {
		case ProspectPromising:
			st.Promising++
		case ProspectNeedsFollowUp:
			st.NeedsFollowUp++
		}
	}
	return st
}

// Industries returns the distinct non-empty industries, sorted.
func Industries(records []Record) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range records {
		if r.Industry == "" {
			continue
		}
		if _, ok := seen[r.Industry]; ok {
			continue
		}
		seen[r.Industry] = struct{}{}
		out = append(out, r.Industry)
	}
	slices.Sort(out)
	return out
}
