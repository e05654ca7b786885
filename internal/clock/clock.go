// Package clock maps wall-clock instants to the operating model's
// service day. Every other component obtains "now" only through here so
// tests can inject a fixed instant instead of calling time.Now directly.
package clock

import "time"

// ServiceDayStartHour is the local hour at which a new service day
// begins; trains still running past local midnight belong to the
// previous service day.
const ServiceDayStartHour = 4

// DefaultTimezone is the civil timezone the service operates in.
const DefaultTimezone = "Asia/Tokyo"

// Clock resolves wall-clock instants against a fixed civil timezone.
type Clock struct {
	loc *time.Location
}

// New loads the named IANA timezone and returns a Clock bound to it.
func New(timezone string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &Clock{loc: loc}, nil
}

// Now returns the current instant in the clock's timezone.
func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// In converts an arbitrary instant into the clock's timezone.
func (c *Clock) In(t time.Time) time.Time {
	return t.In(c.loc)
}

// ServiceDate returns the operating date for instant t: if the local
// hour is before ServiceDayStartHour, the service date is the previous
// calendar date.
func (c *Clock) ServiceDate(t time.Time) time.Time {
	local := c.In(t)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
	if local.Hour() < ServiceDayStartHour {
		date = date.AddDate(0, 0, -1)
	}
	return date
}

// ServiceDaySeconds returns the number of seconds elapsed from 00:00 of
// the service date to instant t. Values >= 86400 represent post-midnight
// portions of a late-night service day.
func (c *Clock) ServiceDaySeconds(t time.Time) int {
	local := c.In(t)
	date := c.ServiceDate(t)
	return int(local.Sub(date).Seconds())
}

// ServiceType describes the coarse calendar category of a service day.
type ServiceType string

const (
	Weekday        ServiceType = "Weekday"
	SaturdayHoliday ServiceType = "SaturdayHoliday"
)

// ServiceTypeAt returns Weekday or SaturdayHoliday for instant t's
// service date. Statutory holidays are not modeled (see SPEC_FULL.md).
func (c *Clock) ServiceTypeAt(t time.Time) ServiceType {
	date := c.ServiceDate(t)
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return SaturdayHoliday
	default:
		return Weekday
	}
}
