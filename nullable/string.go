package nullable

import (
	"bytes"
	"database/sql"
	"encoding/json"
)

// String in `nullable` package
// implements: sql.Scanner by embedding sql.NullString
// implements: json.Marshaler and json.Unmarshaler
// JSON numbers are accepted and kept as their literal text (e.g. a DNI sent as 20123456)
type String struct {
	sql.NullString
}

func NewString(s string) String {
	return String{sql.NullString{String: s, Valid: true}}
}

func (n String) MarshalJSON() ([]byte, error) {
	if n.Valid {
		return json.Marshal(n.String)
	}
	return []byte("null"), nil
}

func (n *String) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		n.Valid = false
		n.String = ""
		return nil
	}
	if len(data) > 0 && data[0] != '"' {
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return err
		}
		n.String, n.Valid = num.String(), true
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	n.String = str
	n.Valid = true
	return nil
}

func (n String) ForceValue() string {
	if !n.Valid {
		return ""
	}
	return n.String
}

func (n String) IsNil() bool {
	return !n.Valid
}
