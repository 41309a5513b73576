package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// ReportStatus tracks the handling state of an incident report.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "Pending"
	ReportStatusInProgress ReportStatus = "InProgress"
	ReportStatusResolved   ReportStatus = "Resolved"
	ReportStatusRejected   ReportStatus = "Rejected"
)

// Valid reports whether s is a known status.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusResolved, ReportStatusRejected:
		return true
	default:
		return false
	}
}

// Location is either a free-text address or a coordinate pair.
type Location struct {
	Address string
	Lat     *float64
	Lng     *float64
}

// IsPoint reports whether the location was given as coordinates.
func (l Location) IsPoint() bool {
	return l.Lat != nil || l.Lng != nil
}

// Validate checks that exactly one usable form is present.
func (l Location) Validate() error {
	if l.IsPoint() {
		if l.Lat == nil || l.Lng == nil {
			return errors.New("location must have lat and lng")
		}
		return nil
	}
	if strings.TrimSpace(l.Address) == "" {
		return errors.New("location must be a valid string or lat/lng object")
	}
	return nil
}

type point struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// MarshalJSON emits a string for addresses and an object for coordinates.
func (l Location) MarshalJSON() ([]byte, error) {
	if l.IsPoint() {
		return json.Marshal(point{Lat: l.Lat, Lng: l.Lng})
	}
	return json.Marshal(l.Address)
}

// UnmarshalJSON accepts either form.
func (l *Location) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = Location{}
		return nil
	}
	if data[0] == '"' {
		var address string
		if err := json.Unmarshal(data, &address); err != nil {
			return err
		}
		*l = Location{Address: address}
		return nil
	}
	var p point
	if err := json.Unmarshal(data, &p); err != nil {
		return errors.New("location must be a string or an object with lat and lng")
	}
	*l = Location{Lat: p.Lat, Lng: p.Lng}
	return nil
}

// Report is an incident filed by a citizen or an anonymous caller.
type Report struct {
	ID          string
	ReportType  string
	Description string
	Location    Location
	FiledBy     string
	Phone       string
	Status      ReportStatus
	FiledAt     time.Time
	UpdatedAt   time.Time
}
