package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Metadata is a free-form string-keyed, string-valued map attached to
// transactions. No keys are required. Stored as jsonb.
type Metadata map[string]string

// Value implements the driver.Valuer interface
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface. The driver hands jsonb back as
// []byte or string depending on configuration; both must decode.
func (m *Metadata) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported metadata column type %T", value)
	}
}

// MarshalJSON returns the JSON encoding
func (m Metadata) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]string(m))
}

// UnmarshalJSON sets the JSON encoding
func (m *Metadata) UnmarshalJSON(data []byte) error {
	if m == nil {
		return errors.New("nil pointer")
	}
	return json.Unmarshal(data, (*map[string]string)(m))
}
