package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/andybalholm/brotli"

	"course-admin/internal/domain"
)

// Snapshot is a point-in-time copy of the catalog, stored brotli-compressed
// (.json.br) to keep archived snapshots small.
type Snapshot struct {
	TakenAt time.Time        `json:"taken_at"`
	Courses []snapshotCourse `json:"courses"`
}

// snapshotCourse reuses the backend's wire names so a snapshot diffs cleanly
// against raw API captures.
type snapshotCourse struct {
	CourseID    string       `json:"course_id"`
	CourseName  string       `json:"course_name"`
	Description string       `json:"description"`
	Instructor  string       `json:"instructor"`
	Price       domain.Price `json:"price"`
	PLink       string       `json:"p_link"`
	YLink       string       `json:"y_link"`
}

// WriteSnapshot writes a compressed snapshot of the catalog.
func WriteSnapshot(w io.Writer, takenAt time.Time, courses []domain.Course) error {
	snap := Snapshot{TakenAt: takenAt.UTC(), Courses: make([]snapshotCourse, 0, len(courses))}
	for _, c := range courses {
		snap.Courses = append(snap.Courses, snapshotCourse{
			CourseID:    c.ID,
			CourseName:  c.Name,
			Description: c.Description,
			Instructor:  c.Instructor,
			Price:       c.Price,
			PLink:       c.ThumbnailURL,
			YLink:       c.VideoURL,
		})
	}

	bw := brotli.NewWriter(w)
	if err := json.NewEncoder(bw).Encode(snap); err != nil {
		return fmt.Errorf("export: encode snapshot: %w", err)
	}
	return bw.Close()
}

// ReadSnapshot decodes a compressed snapshot back into courses.
func ReadSnapshot(r io.Reader) (time.Time, []domain.Course, error) {
	var snap Snapshot
	if err := json.NewDecoder(brotli.NewReader(r)).Decode(&snap); err != nil {
		return time.Time{}, nil, fmt.Errorf("export: decode snapshot: %w", err)
	}

	out := make([]domain.Course, 0, len(snap.Courses))
	for _, sc := range snap.Courses {
		out = append(out, domain.Course{
			ID:           sc.CourseID,
			Name:         sc.CourseName,
			Description:  sc.Description,
			Instructor:   sc.Instructor,
			Price:        sc.Price,
			ThumbnailURL: sc.PLink,
			VideoURL:     sc.YLink,
		})
	}
	return snap.TakenAt, out, nil
}

// WriteSnapshotFile writes the compressed snapshot to path.
func WriteSnapshotFile(path string, takenAt time.Time, courses []domain.Course) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteSnapshot(f, takenAt, courses); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return f.Close()
}
