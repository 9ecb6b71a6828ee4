package domain

import "time"

// gracePeriod keeps an event active for one hour past its scheduled start.
const gracePeriod = time.Hour

// Event is a scheduled activity created by a teacher or admin.
// EventDate holds the calendar day (midnight); EventTime is the wall-clock
// start in "15:04:05" form, mirroring the DATE and TIME columns it is
// stored in.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	EventTime   string    `json:"event_time"`
	Location    string    `json:"location"`
	CreatedBy   int64     `json:"created_by"`
	IsActive    bool      `json:"is_active"`
}

// EndsAt returns the moment the event stops being active on its own day:
// event_date + event_time + one hour of grace.
func (e Event) EndsAt() time.Time {
	clock, err := time.Parse("15:04:05", e.EventTime)
	if err != nil {
		clock, err = time.Parse("15:04", e.EventTime)
		if err != nil {
			// unparseable time: the event ends with its day
			return e.EventDate.AddDate(0, 0, 1)
		}
	}
	d := e.EventDate
	start := time.Date(d.Year(), d.Month(), d.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, d.Location())
	return start.Add(gracePeriod)
}

// Expired reports whether the event should be deactivated at the given
// instant: its day is strictly in the past, or it is today and the start
// time plus the grace hour has passed. The SQL sweep applies the same
// predicate set-wide. The transition is one-directional: an expired
// event is never reactivated.
func (e Event) Expired(now time.Time) bool {
	day := midnight(e.EventDate, now.Location())
	today := midnight(now, now.Location())
	if day.Before(today) {
		return true
	}
	if day.After(today) {
		return false
	}
	return e.EndsAt().Before(now)
}

func midnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
