package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"log"
)

// StringList is a JSON-encoded text column holding an ordered list of
// strings (inclusions, highlights, itinerary activities and so on).
//
// Scanning is lenient: a row with malformed JSON decodes to an empty list
// and logs a warning instead of failing the whole read. Writes always
// produce valid JSON ("[]" for nil).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	buf, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("domain: encode string list: %w", err)
	}
	return string(buf), nil
}

func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("domain: cannot scan %T into StringList", src)
	}

	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("warning: malformed list column %q: %v", raw, err)
		*l = StringList{}
		return nil
	}
	if items == nil {
		items = []string{}
	}
	*l = items
	return nil
}

// IntList is the integer counterpart of StringList (child ages and the
// like), with the same lenient scanning behavior.
type IntList []int

func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	buf, err := json.Marshal([]int(l))
	if err != nil {
		return nil, fmt.Errorf("domain: encode int list: %w", err)
	}
	return string(buf), nil
}

func (l *IntList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = IntList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("domain: cannot scan %T into IntList", src)
	}

	if len(raw) == 0 {
		*l = IntList{}
		return nil
	}

	var items []int
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("warning: malformed list column %q: %v", raw, err)
		*l = IntList{}
		return nil
	}
	if items == nil {
		items = []int{}
	}
	*l = items
	return nil
}
