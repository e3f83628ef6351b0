package domain

import "testing"

func TestNewDraftHasNoIdentity(t *testing.T) {
	d := NewDraft()

	if id, ok := d.CourseID(); ok || id != "" {
		t.Errorf("CourseID() = (%q, %v), want (\"\", false)", id, ok)
	}
	if d.IsEdit() {
		t.Error("NewDraft().IsEdit() = true, want false")
	}
	if d.Fields != (Fields{}) {
		t.Errorf("NewDraft fields = %+v, want all blank", d.Fields)
	}
}

func TestEditOfCarriesIdentityAndCopiesFields(t *testing.T) {
	c := Course{
		ID:           "5",
		Name:         "SQL",
		Description:  "d",
		Instructor:   "Bo",
		Price:        20,
		ThumbnailURL: "t",
		VideoURL:     "v",
	}

	d := EditOf(c)
	id, ok := d.CourseID()
	if !ok || id != "5" {
		t.Errorf("CourseID() = (%q, %v), want (5, true)", id, ok)
	}
	if d.Fields != FieldsOf(c) {
		t.Errorf("draft fields = %+v, want copy of course fields", d.Fields)
	}

	// Editing the draft must not reach back into the course value.
	d.Fields.Name = "Changed"
	if c.Name != "SQL" {
		t.Errorf("course name = %q after draft edit, want SQL", c.Name)
	}
}

func TestDraftClone(t *testing.T) {
	d := EditOf(Course{ID: "1", Name: "JS"})
	cp := d.Clone()

	cp.Fields.Name = "Other"
	if d.Fields.Name != "JS" {
		t.Errorf("original draft name = %q after clone edit, want JS", d.Fields.Name)
	}

	if id, ok := cp.CourseID(); !ok || id != "1" {
		t.Errorf("clone CourseID() = (%q, %v), want (1, true)", id, ok)
	}
}
