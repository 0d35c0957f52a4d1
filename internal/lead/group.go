package lead

import (
	"slices"
	"time"
)

// Recency buckets, in display order.
const (
	RecencyToday     = "今日"
	RecencyThisWeek  = "今週"
	RecencyThisMonth = "今月"
	RecencyLastMonth = "先月"
	RecencyEarlier   = "それ以前"
	RecencyNever     = "未接触"
)

// RecencyOrder lists the recency buckets in display order.
var RecencyOrder = []string{
	RecencyToday, RecencyThisWeek, RecencyThisMonth,
	RecencyLastMonth, RecencyEarlier, RecencyNever,
}

// DefaultCategory is the category label for records with no industry.
const DefaultCategory = "その他"

// Group is a labelled subset of records.
type Group struct {
	Label   string   `json:"label"`
	Records []Record `json:"records"`
}

// RecencyOf returns the bucket for a last-contact date relative to today.
// Weeks start on Sunday. A date after today is counted as today.
func RecencyOf(d Date, today Date) string {
	if d.IsZero() {
		return RecencyNever
	}
	if !d.Before(today) {
		return RecencyToday
	}

	t := today.Time()
	weekStart := today.AddDays(-int(t.Weekday()))
	monthStart := NewDate(t.Year(), t.Month(), 1)
	lastMonthStart := NewDate(t.Year(), t.Month()-1, 1)

	switch {
	case !d.Before(weekStart):
		return RecencyThisWeek
	case !d.Before(monthStart):
		return RecencyThisMonth
	case !d.Before(lastMonthStart):
		return RecencyLastMonth
	default:
		return RecencyEarlier
	}
}

// GroupByRecency partitions records into the six recency buckets, always
// returned in RecencyOrder (empty buckets included). now supplies the
// reference day in its own location.
func GroupByRecency(records []Record, now time.Time) []Group {
	today := DateOf(now)
	groups := make([]Group, len(RecencyOrder))
	pos := make(map[string]int, len(RecencyOrder))
	for i, label := range RecencyOrder {
		groups[i] = Group{Label: label, Records: []Record{}}
		pos[label] = i
	}
	for _, r := range records {
		i := pos[RecencyOf(r.LastContact, today)]
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// GroupByCategory partitions records by industry, ordered by label.
// Records with a blank industry go to DefaultCategory.
func GroupByCategory(records []Record) []Group {
	byLabel := make(map[string][]Record)
	for _, r := range records {
		label := r.Industry
		if label == "" {
			label = DefaultCategory
		}
		byLabel[label] = append(byLabel[label], r)
	}

	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	slices.Sort(labels)

	groups := make([]Group, len(labels))
	for i, label := range labels {
		groups[i] = Group{Label: label, Records: byLabel[label]}
	}
	return groups
}
