package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Price puede venir como:
// - 49.99 (number)
// - "49.99" (string, what the admin form posts)
// - "" / null (treated as zero)
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*p = 0
		return nil
	}

	// string: "49.99"
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*p = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*p = Price(f)
		return nil
	}

	// number: 49.99
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*p = Price(f)
	return nil
}

// MarshalJSON always emits a plain number so the backend never sees the
// string form back.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p Price) String() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}

// ParsePrice converts user flag input into a Price.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return Price(f), nil
}
