package get_equipment_availability

import (
	"time"

	"github.com/heavyrent/rental-service/internal/domain"
)

// minFreeWindow is the shortest gap a booking can fill.
const minFreeWindow = time.Duration(domain.MinDurationHours) * time.Hour

// bookedWindows clips each live booking to [from, to). Bookings come ordered by start time.
func bookedWindows(bookings []*domain.Booking, from, to time.Time) []BookedWindow {
	result := make([]BookedWindow, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == domain.StatusCancelled || !b.Overlaps(from, to) {
			continue
		}
		result = append(result, BookedWindow{
			Window: clip(Window{Start: b.StartTime, End: b.EndTime}, from, to),
			Status: string(b.Status),
		})
	}
	return result
}

// mergeWindows joins overlapping and touching windows. Input must be sorted by start.
func mergeWindows(booked []BookedWindow) []Window {
	merged := make([]Window, 0, len(booked))
	for _, b := range booked {
		last := len(merged) - 1
		if last >= 0 && !b.Start.After(merged[last].End) {
			if b.End.After(merged[last].End) {
				merged[last].End = b.End
			}
			continue
		}
		merged = append(merged, b.Window)
	}
	return merged
}

// freeWindows returns the gaps between busy windows inside [from, to)
// that are long enough for the shortest booking.
//
// Example, from 00:00 to 24:00 with busy 09:00-13:00 and 13:30-17:00:
// free is 00:00-09:00 and 17:00-24:00; the 30 minute gap is dropped.
func freeWindows(busy []Window, from, to time.Time) []Window {
	free := make([]Window, 0, len(busy)+1)
	cursor := from
	for _, w := range busy {
		if w.Start.After(cursor) {
			free = appendFree(free, cursor, w.Start)
		}
		if w.End.After(cursor) {
			cursor = w.End
		}
	}
	if to.After(cursor) {
		free = appendFree(free, cursor, to)
	}
	return free
}

func appendFree(free []Window, start, end time.Time) []Window {
	if end.Sub(start) < minFreeWindow {
		return free
	}
	return append(free, Window{Start: start, End: end})
}

func clip(w Window, from, to time.Time) Window {
	if w.Start.Before(from) {
		w.Start = from
	}
	if w.End.After(to) {
		w.End = to
	}
	return w
}
