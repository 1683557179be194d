package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// NewOrderID returns a sortable order identifier such as ORD-01J9Z3...
func NewOrderID() string {
	return "ORD-" + ulid.Make().String()
}

// NewRoomID names a call room for callers that do not bring their own.
func NewRoomID() string {
	return "room-" + strings.ToLower(ulid.Make().String())
}

// NewSummaryID returns CS-YYYYMMDD-XXXXXXXX using the UTC date of now.
func NewSummaryID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "CS-" + now.UTC().Format("20060102") + "-" + suffix
}
