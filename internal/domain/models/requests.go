package models

import (
	"fmt"
	"time"
)

// Requests for the chart HTTP endpoints. Location fields left out fall back
// to the configured default location.

type BirthData struct {
	Year      int      `json:"year" validate:"required,gte=1,lte=9999"`
	Month     int      `json:"month" validate:"required,gte=1,lte=12"`
	Day       int      `json:"day" validate:"required,gte=1,lte=31"`
	Hour      *int     `json:"hour" default:"12" validate:"omitempty,gte=0,lte=23"`
	Minute    *int     `json:"minute" default:"0" validate:"omitempty,gte=0,lte=59"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// Moment returns the birth instant in UTC. Dates that do not exist, such as
// 31 April, are rejected.
func (b BirthData) Moment() (time.Time, error) {
	hour, minute := 12, 0
	if b.Hour != nil {
		hour = *b.Hour
	}
	if b.Minute != nil {
		minute = *b.Minute
	}
	t := time.Date(b.Year, time.Month(b.Month), b.Day, hour, minute, 0, 0, time.UTC)
	if t.Day() != b.Day || int(t.Month()) != b.Month {
		return time.Time{}, fmt.Errorf("%04d-%02d-%02d is not a calendar date", b.Year, b.Month, b.Day)
	}
	return t, nil
}

// Location returns the coordinates, using def for the ones left out.
func (b BirthData) Location(defLat, defLon float64) (lat, lon float64) {
	lat, lon = defLat, defLon
	if b.Latitude != nil {
		lat = *b.Latitude
	}
	if b.Longitude != nil {
		lon = *b.Longitude
	}
	return lat, lon
}

type TransitRequest struct {
	BirthData
	// At is the transit moment; empty means now.
	At *time.Time `json:"at"`
}

type SolarReturnRequest struct {
	BirthData
	CurrentYear int `json:"current_year" validate:"required,gte=1,lte=9999"`
}

type PairRequest struct {
	Person1 BirthData `json:"person1"`
	Person2 BirthData `json:"person2"`
}

// AnalyzeRequest carries caller-supplied longitudes; nothing is read from
// the ephemeris.
type AnalyzeRequest struct {
	Bodies    map[Body]float64 `json:"bodies" validate:"required,min=1"`
	Speeds    map[Body]float64 `json:"speeds"`
	Cusps     []float64        `json:"cusps" validate:"omitempty,len=12"`
	Ascendant *float64         `json:"ascendant"`
	Midheaven *float64         `json:"midheaven"`
}
