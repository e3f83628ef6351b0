package domain

// Draft is the mutable in-progress copy of a course being created or edited
// in the admin console. The variant is fixed at construction: a draft from
// NewDraft has no identity and submits as a create; a draft from EditOf
// carries the id of the list entry it was copied from and submits as an
// update. A draft never aliases the catalog entry it came from.
type Draft struct {
	Fields Fields

	id      string
	editing bool
}

// NewDraft returns an all-blank draft for a course that does not exist yet.
func NewDraft() *Draft {
	return &Draft{}
}

// EditOf returns a draft seeded with a copy of an existing course's fields.
func EditOf(c Course) *Draft {
	return &Draft{
		Fields:  FieldsOf(c),
		id:      c.ID,
		editing: true,
	}
}

// CourseID returns the identity of the course being edited. ok is false for
// drafts created by NewDraft.
func (d *Draft) CourseID() (id string, ok bool) {
	return d.id, d.editing
}

// IsEdit reports whether the draft edits an existing course.
func (d *Draft) IsEdit() bool {
	return d.editing
}

// Clone returns an independent copy of the draft.
func (d *Draft) Clone() *Draft {
	cp := *d
	return &cp
}
