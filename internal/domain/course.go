package domain

import (
	"fmt"
	"strings"
)

// Course is the canonical representation of a catalog entry inside this tool.
// The admin API speaks wire names (course_id, course_name, p_link, y_link, ...);
// internal/adminapi maps between those and this model. A course that came back
// from the backend always carries an ID; the backend assigns it.
type Course struct {
	ID           string
	Name         string
	Description  string
	Instructor   string
	Price        Price
	ThumbnailURL string
	VideoURL     string
}

// Fields are the editable fields of a course: everything except identity.
type Fields struct {
	Name         string
	Description  string
	Instructor   string
	Price        Price
	ThumbnailURL string
	VideoURL     string
}

// FieldsOf extracts the editable fields from a course.
func FieldsOf(c Course) Fields {
	return Fields{
		Name:         c.Name,
		Description:  c.Description,
		Instructor:   c.Instructor,
		Price:        c.Price,
		ThumbnailURL: c.ThumbnailURL,
		VideoURL:     c.VideoURL,
	}
}

// Validate checks required-field presence and price sign. It mirrors what the
// admin form enforces client-side; everything else is the backend's problem.
func (f Fields) Validate() error {
	var missing []string
	for _, fv := range []struct {
		name  string
		value string
	}{
		{"name", f.Name},
		{"description", f.Description},
		{"instructor", f.Instructor},
		{"thumbnail_url", f.ThumbnailURL},
		{"video_url", f.VideoURL},
	} {
		if strings.TrimSpace(fv.value) == "" {
			missing = append(missing, fv.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	if f.Price < 0 {
		return fmt.Errorf("price must be non-negative, got %v", f.Price)
	}
	return nil
}
