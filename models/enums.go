package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"time"
)

type TransportMode string

const (
	TransportModeSea TransportMode = "SEA"
	TransportModeAir TransportMode = "AIR"
)

func (t TransportMode) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

// convert input to enum type
func (t *TransportMode) UnmarshalJSON(b []byte) error {
	str, err := strconv.Unquote(string(b))
	if err != nil {
		return errors.New("transport mode must be string")
	}
	switch str {
	case "SEA":
		*t = TransportModeSea
	case "AIR":
		*t = TransportModeAir
	default:
		return errors.New("invalid transport mode")
	}
	return nil
}

// YesNo is the two-valued flag used for payment status and the shared
// document checkboxes.
type YesNo string

const (
	Yes YesNo = "YES"
	No  YesNo = "NO"
)

func (t YesNo) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

func (t *YesNo) UnmarshalJSON(b []byte) error {
	str, err := strconv.Unquote(string(b))
	if err != nil {
		return errors.New("flag must be string")
	}
	switch str {
	case "YES":
		*t = Yes
	case "NO", "":
		*t = No
	default:
		return errors.New("invalid flag, want YES or NO")
	}
	return nil
}

type UserRole string

const (
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleIPS   UserRole = "IPS"
	UserRoleTrio  UserRole = "TRIO"
)

func (t UserRole) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

func (t *UserRole) UnmarshalJSON(b []byte) error {
	str, err := strconv.Unquote(string(b))
	if err != nil {
		return errors.New("user role must be string")
	}
	switch str {
	case "ADMIN":
		*t = UserRoleAdmin
	case "IPS":
		*t = UserRoleIPS
	case "TRIO":
		*t = UserRoleTrio
	default:
		return errors.New("invalid user role")
	}
	return nil
}

// DateString is a date-only column ("2006-01-02" on the wire).
type DateString time.Time

const dateStringLayout = "2006-01-02"

func (t DateString) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(time.Time(t).Format(dateStringLayout))), nil
}

// Parse the string into time.Time object
func (t *DateString) UnmarshalJSON(b []byte) error {
	str, err := strconv.Unquote(string(b))
	if err != nil {
		return errors.New("DateString must be string")
	}
	parsed, err := time.Parse(dateStringLayout, str)
	if err != nil {
		return errors.New("error parsing date, want yyyy-mm-dd")
	}
	*t = DateString(parsed)
	return nil
}

// Value implements the driver.Valuer interface
func (t DateString) Value() (driver.Value, error) {
	return time.Time(t), nil
}

// Scan implements the sql.Scanner interface
func (t *DateString) Scan(value interface{}) error {
	if value == nil {
		*t = DateString(time.Time{})
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		*t = DateString(v)
	default:
		return fmt.Errorf("cannot convert %T to DateString", value)
	}
	return nil
}

func (t *DateString) Time() *time.Time {
	if t == nil {
		return nil
	}
	v := time.Time(*t)
	return &v
}

func (t *DateString) Format() string {
	if t == nil {
		return ""
	}
	return time.Time(*t).Format(dateStringLayout)
}

func NewDateString(t time.Time) *DateString {
	d := DateString(t)
	return &d
}
