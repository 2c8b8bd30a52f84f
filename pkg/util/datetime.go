package util

import "time"

const ISO8601Format = "2006-01-02T15:04:05Z"

func TimeToISO8601Str(t time.Time) string {
	return t.Format(ISO8601Format)
}

func ParseISO8601(s string) (time.Time, error) {
	return time.Parse(ISO8601Format, s)
}
