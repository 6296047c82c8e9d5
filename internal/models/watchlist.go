package models

import (
	"sort"
	"time"

	"github.com/FrankoSolomun/movie-watchlist/internal/watch"
)

// WatchlistEntry is one (user, movie) pair on a user's list.
//
// OccursOn holds both scheduled and watched dates as YYYY-MM-DD; whether the
// entry counts as upcoming or watched is derived, never stored. An empty
// string means no date is set.
type WatchlistEntry struct {
	ID          int          `json:"id"`
	UserID      int          `json:"user_id"`
	MovieID     int          `json:"movie_id"`
	Title       string       `json:"title"`
	PosterURL   string       `json:"poster_url,omitempty"`
	ReleaseDate string       `json:"release_date,omitempty"`
	Note        string       `json:"note,omitempty"`
	Watched     bool         `json:"watched"`
	OccursOn    string       `json:"occurs_on,omitempty"`
	Rating      *int         `json:"rating"`
	Status      watch.Status `json:"status,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// StatusAt derives the entry's display status for the given reference day.
func (e *WatchlistEntry) StatusAt(today time.Time) watch.Status {
	return watch.Classify(e.Watched, e.OccursOn, today)
}

// AddWatchlistRequest is the request body for adding a movie to the list.
type AddWatchlistRequest struct {
	MovieID     int    `json:"movie_id"`
	Title       string `json:"title"`
	PosterURL   string `json:"poster_url"`
	ReleaseDate string `json:"release_date"`
	Note        string `json:"note"`
}

// SetWatchDateRequest is the request body for scheduling or marking watched.
type SetWatchDateRequest struct {
	Date string `json:"date"`
}

// RateRequest is the request body for rating a watched movie. A null rating
// clears the existing one.
type RateRequest struct {
	Rating *int `json:"rating"`
}

// WatchlistResponse is the full-list response with per-entry derived status.
type WatchlistResponse struct {
	Movies []WatchlistEntry `json:"movies"`
}

// WatchlistGroups are the three derived views of a user's list.
type WatchlistGroups struct {
	ToWatch  []WatchlistEntry `json:"to_watch"`
	Upcoming []WatchlistEntry `json:"upcoming"`
	Watched  []WatchlistEntry `json:"watched"`
}

// GroupEntries buckets entries by derived status. The upcoming bucket is
// sorted ascending by date. Everything is recomputed from the full collection
// on every call; per-user lists are small enough that no incremental index is
// worth maintaining.
func GroupEntries(entries []WatchlistEntry, today time.Time) WatchlistGroups {
	groups := WatchlistGroups{
		ToWatch:  make([]WatchlistEntry, 0),
		Upcoming: make([]WatchlistEntry, 0),
		Watched:  make([]WatchlistEntry, 0),
	}
	for _, e := range entries {
		e.Status = e.StatusAt(today)
		switch e.Status {
		case watch.StatusUpcoming:
			groups.Upcoming = append(groups.Upcoming, e)
		case watch.StatusWatched:
			groups.Watched = append(groups.Watched, e)
		default:
			groups.ToWatch = append(groups.ToWatch, e)
		}
	}
	sort.SliceStable(groups.Upcoming, func(i, j int) bool {
		return groups.Upcoming[i].OccursOn < groups.Upcoming[j].OccursOn
	})
	return groups
}

// WatchedOn returns the entries watched on the given calendar day. Entries
// whose derived status is not watched never match, so a movie scheduled for a
// future day does not show up when that day is queried ahead of time.
func WatchedOn(entries []WatchlistEntry, day time.Time, today time.Time) []WatchlistEntry {
	key := watch.DayKey(day)
	matched := make([]WatchlistEntry, 0)
	for _, e := range entries {
		if e.StatusAt(today) != watch.StatusWatched {
			continue
		}
		if e.OccursOn == key {
			e.Status = watch.StatusWatched
			matched = append(matched, e)
		}
	}
	return matched
}

// WatchedDays returns the sorted set of distinct calendar days with at least
// one watched entry, for calendar highlighting.
func WatchedDays(entries []WatchlistEntry, today time.Time) []string {
	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.StatusAt(today) == watch.StatusWatched {
			seen[e.OccursOn] = struct{}{}
		}
	}
	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}
