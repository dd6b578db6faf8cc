// Package jsontime carries booking timestamps over JSON as zone-less local date-times
// ("2006-01-02T15:04:05"), the format clients of the API exchange. RFC 3339 input is
// accepted as well.
package jsontime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const Layout = "2006-01-02T15:04:05"

type Time struct {
	time.Time
}

func New(t time.Time) Time {
	return Time{Time: t}
}

func Parse(s string) (Time, error) {
	if t, err := time.ParseInLocation(Layout, s, time.Local); err == nil {
		return Time{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Time{}, fmt.Errorf("invalid date-time %q: expected %s", s, Layout)
	}
	return Time{Time: t.In(time.Local)}, nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.In(time.Local).Format(Layout))
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
