package ua

import "time"

// DateTime is an OPC UA timestamp: the number of 100-nanosecond
// intervals since January 1, 1601 (UTC). The zero value means
// "no timestamp".
type DateTime int64

// epochDelta is the interval count between 1601-01-01 and 1970-01-01.
const epochDelta = 116444736000000000

// DateTimeFromTime converts a Go time. The zero time maps to the zero
// DateTime.
func DateTimeFromTime(t time.Time) DateTime {
	if t.IsZero() {
		return 0
	}
	return DateTime(t.UnixNano()/100 + epochDelta)
}

// Time converts to a Go time in UTC.
func (d DateTime) Time() time.Time {
	if d == 0 {
		return time.Time{}
	}
	return time.Unix(0, (int64(d)-epochDelta)*100).UTC()
}

func (d DateTime) Compare(o DateTime) int {
	switch {
	case d < o:
		return -1
	case d > o:
		return 1
	}
	return 0
}
