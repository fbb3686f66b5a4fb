package utils

import (
	"strings"
	"time"
)

// GenerateClassID returns a timestamp-derived class id, millisecond
// resolution (yyyyMMddHHmmssSSS).
func GenerateClassID() string {
	return strings.Replace(time.Now().Format("20060102150405.000"), ".", "", 1)
}

// GenerateInstanceID returns a timestamp-derived instance id, second
// resolution (yyyyMMddHHmmss).
func GenerateInstanceID() string {
	return time.Now().Format("20060102150405")
}
