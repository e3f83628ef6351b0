package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"course-admin/internal/domain"
)

// Catalog CSV template. Keep header order EXACT: the import path matches
// columns by this header.
var catalogHeader = []string{
	"COURSE_ID",
	"COURSE_NAME",
	"DESCRIPTION",
	"INSTRUCTOR",
	"PRICE",
	"THUMBNAIL_URL",
	"VIDEO_URL",
}

// WriteCatalogCSV writes the catalog in the exchange format. Courses fresh
// from the backend always carry an id; rows meant for bulk create leave the
// COURSE_ID column empty.
func WriteCatalogCSV(w io.Writer, courses []domain.Course) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(catalogHeader); err != nil {
		return err
	}
	for _, c := range courses {
		row := []string{
			c.ID,
			c.Name,
			c.Description,
			c.Instructor,
			c.Price.String(),
			c.ThumbnailURL,
			c.VideoURL,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCatalogCSVFile writes the catalog CSV to path.
func WriteCatalogCSVFile(path string, courses []domain.Course) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCatalogCSV(f, courses); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return f.Close()
}

// ReadCatalogCSV parses the exchange format back into courses. The header row
// is validated so a file exported elsewhere fails loudly instead of mapping
// columns silently wrong.
func ReadCatalogCSV(r io.Reader) ([]domain.Course, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(catalogHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("export: read header: %w", err)
	}
	for i, want := range catalogHeader {
		if strings.TrimSpace(header[i]) != want {
			return nil, fmt.Errorf("export: unexpected column %d: got %q, want %q", i, header[i], want)
		}
	}

	var out []domain.Course
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("export: read row: %w", err)
		}

		price, err := domain.ParsePrice(row[4])
		if err != nil {
			return nil, fmt.Errorf("export: line %d: bad price %q: %w", line, row[4], err)
		}

		out = append(out, domain.Course{
			ID:           strings.TrimSpace(row[0]),
			Name:         row[1],
			Description:  row[2],
			Instructor:   row[3],
			Price:        price,
			ThumbnailURL: row[5],
			VideoURL:     row[6],
		})
	}
	return out, nil
}
