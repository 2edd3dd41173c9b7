// Package timex provides a time.Time wrapper with a stable JSON and
// database representation.
package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const layout = "2006-01-02 15:04:05"

// Time marshals as "2006-01-02 15:04:05" instead of RFC 3339.
type Time time.Time

func Now() Time {
	return Time(time.Now())
}

func FromTime(t time.Time) Time {
	return Time(t)
}

func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

func (t Time) String() string {
	return time.Time(t).Format(layout)
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*t = Time(time.Time{})
		return nil
	}
	parsed, err := time.ParseInLocation(`"`+layout+`"`, s, time.Local)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}

// Value implements driver.Valuer for GORM.
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan implements sql.Scanner for GORM.
func (t *Time) Scan(v interface{}) error {
	switch value := v.(type) {
	case nil:
		*t = Time(time.Time{})
	case time.Time:
		*t = Time(value)
	case string:
		parsed, err := time.ParseInLocation(layout, value, time.Local)
		if err != nil {
			return err
		}
		*t = Time(parsed)
	default:
		return fmt.Errorf("cannot scan %T into timex.Time", v)
	}
	return nil
}
