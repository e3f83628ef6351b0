package domain

import (
	"strings"
	"testing"
)

func validFields() Fields {
	return Fields{
		Name:         "Go Basics",
		Description:  "intro",
		Instructor:   "Ana",
		Price:        49.99,
		ThumbnailURL: "thumb.png",
		VideoURL:     "vid.mp4",
	}
}

func TestFieldsValidate(t *testing.T) {
	if err := validFields().Validate(); err != nil {
		t.Errorf("Expected valid fields, got %v", err)
	}

	testCases := []struct {
		name     string
		mutate   func(*Fields)
		contains string
	}{
		{"missing name", func(f *Fields) { f.Name = "  " }, "name"},
		{"missing description", func(f *Fields) { f.Description = "" }, "description"},
		{"missing instructor", func(f *Fields) { f.Instructor = "" }, "instructor"},
		{"missing thumbnail", func(f *Fields) { f.ThumbnailURL = "" }, "thumbnail_url"},
		{"missing video", func(f *Fields) { f.VideoURL = "" }, "video_url"},
		{"negative price", func(f *Fields) { f.Price = -1 }, "non-negative"},
	}

	for _, tc := range testCases {
		f := validFields()
		tc.mutate(&f)
		err := f.Validate()
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.contains) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.contains)
		}
	}
}

func TestFieldsValidateZeroPrice(t *testing.T) {
	f := validFields()
	f.Price = 0
	if err := f.Validate(); err != nil {
		t.Errorf("free course should validate, got %v", err)
	}
}

func TestFieldsOf(t *testing.T) {
	c := Course{
		ID:           "1",
		Name:         "JS",
		Description:  "d",
		Instructor:   "Bo",
		Price:        10,
		ThumbnailURL: "t",
		VideoURL:     "v",
	}

	f := FieldsOf(c)
	if f.Name != "JS" || f.Instructor != "Bo" || f.Price != 10 || f.ThumbnailURL != "t" || f.VideoURL != "v" {
		t.Errorf("FieldsOf = %+v, fields lost", f)
	}
}
