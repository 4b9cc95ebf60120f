package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the moderation state of a listing.
type Status uint8

const (
	StatusPending Status = iota
	StatusApproved
	StatusCancelled
)

var statusNames = map[Status]string{
	StatusPending:   "Pending",
	StatusApproved:  "Approved",
	StatusCancelled: "Cancelled",
}

// AllStatuses lists every moderation status in display order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusCancelled}
}

func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// ParseStatus accepts a status name (any case) or its numeric value.
func ParseStatus(v string) (Status, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.ParseUint(v, 10, 8); err == nil {
		s := Status(n)
		if !s.Valid() {
			return 0, fmt.Errorf("unknown status %q", v)
		}
		return s, nil
	}
	for s, name := range statusNames {
		if strings.EqualFold(name, v) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", v)
}
