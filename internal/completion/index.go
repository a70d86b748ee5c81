// Package completion builds the day -> completed routines lookup shared by
// the streak engine, the analytics aggregator and the widget builder.
package completion

import "github.com/julianstephens/routineflow/internal/models"

// Index maps a day key to the set of routine ids completed that day.
type Index map[string]map[string]struct{}

// Build indexes logs by day. Duplicate logs for the same routine and day
// collapse into one entry.
func Build(logs []models.RoutineLog) Index {
	idx := make(Index)
	for _, log := range logs {
		set, ok := idx[log.DateKey]
		if !ok {
			set = make(map[string]struct{})
			idx[log.DateKey] = set
		}
		set[log.RoutineID] = struct{}{}
	}
	return idx
}

// IsCompleted reports whether routineID was completed on day.
func (idx Index) IsCompleted(day, routineID string) bool {
	_, ok := idx[day][routineID]
	return ok
}

// CompletedCount counts how many of routines were completed on day.
// Completions of routines outside the given set are ignored.
func (idx Index) CompletedCount(day string, routines []models.Routine) int {
	set := idx[day]
	if len(set) == 0 {
		return 0
	}
	count := 0
	for _, r := range routines {
		if _, ok := set[r.ID]; ok {
			count++
		}
	}
	return count
}

// CompletedIDs returns the set of routine ids completed on day. The
// returned map must not be modified.
func (idx Index) CompletedIDs(day string) map[string]struct{} {
	return idx[day]
}

// Days returns the number of distinct days with at least one completion.
func (idx Index) Days() int {
	return len(idx)
}

// Total returns the number of distinct (routine, day) completions.
func (idx Index) Total() int {
	total := 0
	for _, set := range idx {
		total += len(set)
	}
	return total
}
