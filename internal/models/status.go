package models

import (
	"database/sql/driver"
	"fmt"
)

// RadioStatus is stored as free text. Only Active and In Service are
// transition targets; anything else found in the table is kept as-is.
type RadioStatus string

const (
	StatusActive    RadioStatus = "Active"
	StatusInService RadioStatus = "In Service"
)

func (s RadioStatus) Known() bool {
	return s == StatusActive || s == StatusInService
}

func (s RadioStatus) String() string { return string(s) }

func (s *RadioStatus) Scan(src interface{}) error {
	v, err := scanText(src)
	if err != nil {
		return fmt.Errorf("RadioStatus.Scan: %w", err)
	}
	*s = RadioStatus(v)
	return nil
}

func (s RadioStatus) Value() (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	return string(s), nil
}

// MissingFlag is the radios.missing column, "Yes" or "No".
type MissingFlag string

const (
	MissingYes MissingFlag = "Yes"
	MissingNo  MissingFlag = "No"
)

func (m MissingFlag) Known() bool {
	return m == MissingYes || m == MissingNo
}

func (m MissingFlag) String() string { return string(m) }

// Toggled flips Yes to No; every other value (No, NULL, legacy text) becomes Yes.
func (m MissingFlag) Toggled() MissingFlag {
	if m == MissingYes {
		return MissingNo
	}
	return MissingYes
}

func (m *MissingFlag) Scan(src interface{}) error {
	v, err := scanText(src)
	if err != nil {
		return fmt.Errorf("MissingFlag.Scan: %w", err)
	}
	*m = MissingFlag(v)
	return nil
}

func (m MissingFlag) Value() (driver.Value, error) {
	if m == "" {
		return nil, nil
	}
	return string(m), nil
}

type ServiceStatus string

const (
	ServiceOpen   ServiceStatus = "open"
	ServiceClosed ServiceStatus = "closed"
)

func scanText(src interface{}) (string, error) {
	switch v := src.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case int64:
		// legacy rows written as 0/1
		return fmt.Sprintf("%d", v), nil
	default:
		return "", fmt.Errorf("unsupported type %T", src)
	}
}
