package adminapi

import (
	"encoding/json"
	"strconv"
	"strings"

	"course-admin/internal/domain"
)

// courseJSON is the wire shape the admin backend speaks. Field names are
// fixed by the backend contract; the rest of the tool uses domain.Course.
type courseJSON struct {
	CourseID    ident        `json:"course_id,omitempty"`
	CourseName  string       `json:"course_name"`
	Description string       `json:"description"`
	Instructor  string       `json:"instructor"`
	Price       domain.Price `json:"price"`
	PLink       string       `json:"p_link"`
	YLink       string       `json:"y_link"`
}

// ident puede venir como:
// - "42" (string)
// - 42 (number, typical for auto-increment backends)
// Numeric-looking values round-trip back as numbers.
type ident string

func (id *ident) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ident(s)
		return nil
	}
	*id = ident(strings.TrimSpace(string(b)))
	return nil
}

func (id ident) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func fromWire(w courseJSON) domain.Course {
	return domain.Course{
		ID:           string(w.CourseID),
		Name:         w.CourseName,
		Description:  w.Description,
		Instructor:   w.Instructor,
		Price:        w.Price,
		ThumbnailURL: w.PLink,
		VideoURL:     w.YLink,
	}
}

// toWire builds the request body. id is empty for creates; the omitempty on
// course_id keeps the create payload free of an identifier.
func toWire(id string, f domain.Fields) courseJSON {
	return courseJSON{
		CourseID:    ident(id),
		CourseName:  f.Name,
		Description: f.Description,
		Instructor:  f.Instructor,
		Price:       f.Price,
		PLink:       f.ThumbnailURL,
		YLink:       f.VideoURL,
	}
}
