package sync

import (
	"fmt"
	"math"
	"strings"

	"course-admin/internal/domain"
)

// CourseUpdate pairs a backend id with the fields to put there.
type CourseUpdate struct {
	ID     string
	Fields domain.Fields
}

// Plan is the set of gateway mutations that makes the backend catalog match
// an imported file.
type Plan struct {
	Create []domain.Fields
	Update []CourseUpdate

	// Delete lists catalog entries absent from the file. The import command
	// only applies these under --prune.
	Delete []domain.Course
}

// Diff compares imported rows with the live catalog:
//   - rows without an id become creates;
//   - rows whose id is in the catalog become updates when any field changed;
//   - rows whose id is unknown to the catalog are an error (a stale file
//     should fail loudly, not silently create duplicates);
//   - catalog entries no row references become delete candidates.
func Diff(incoming []domain.Course, existing []domain.Course) (Plan, error) {
	var plan Plan

	byID := make(map[string]domain.Course, len(existing))
	for _, c := range existing {
		if strings.TrimSpace(c.ID) == "" {
			continue
		}
		byID[c.ID] = c
	}

	seen := make(map[string]bool, len(incoming))
	for i, row := range incoming {
		id := strings.TrimSpace(row.ID)
		if id == "" {
			plan.Create = append(plan.Create, domain.FieldsOf(row))
			continue
		}

		cur, ok := byID[id]
		if !ok {
			return Plan{}, fmt.Errorf("sync: row %d references unknown course id %q", i+1, id)
		}
		if seen[id] {
			return Plan{}, fmt.Errorf("sync: duplicate course id %q in import", id)
		}
		seen[id] = true

		if needsUpdate(row, cur) {
			plan.Update = append(plan.Update, CourseUpdate{ID: id, Fields: domain.FieldsOf(row)})
		}
	}

	for _, c := range existing {
		if !seen[c.ID] {
			plan.Delete = append(plan.Delete, c)
		}
	}

	return plan, nil
}

// needsUpdate compares normalized fields. Price tolerates tiny float
// formatting differences so a round-tripped CSV does not force updates.
func needsUpdate(in, cur domain.Course) bool {
	if norm(in.Name) != norm(cur.Name) {
		return true
	}
	if norm(in.Description) != norm(cur.Description) {
		return true
	}
	if norm(in.Instructor) != norm(cur.Instructor) {
		return true
	}
	if norm(in.ThumbnailURL) != norm(cur.ThumbnailURL) {
		return true
	}
	if norm(in.VideoURL) != norm(cur.VideoURL) {
		return true
	}
	if math.Abs(float64(in.Price-cur.Price)) > 0.001 {
		return true
	}
	return false
}

func norm(s string) string {
	return strings.TrimSpace(s)
}
