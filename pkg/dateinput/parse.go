package dateinput

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrParsing = errors.New("could not understand date")

var (
	ordinal   = regexp.MustCompile(`([0-9])(st|nd|rd|th)`)
	timeOfDay = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)
)

// Parse reads a due date typed by a user, relative to now.
// It understands "today", "tomorrow", weekdays, offsets like "in 3 days"
// or "2w", and absolute dates like "21 Apr" or "21/04/2025". A trailing
// "HH:MM" (optionally after "at") sets the time of day, which otherwise is
// midnight. An empty string means no date and returns nil.
func Parse(s string, now time.Time) (*time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, nil
	}
	hour, minute := 0, 0
	if fields := strings.Fields(s); len(fields) > 0 {
		last := fields[len(fields)-1]
		if m := timeOfDay.FindStringSubmatch(last); m != nil {
			hour, _ = strconv.Atoi(m[1])
			minute, _ = strconv.Atoi(m[2])
			fields = fields[:len(fields)-1]
			if len(fields) > 0 && fields[len(fields)-1] == "at" {
				fields = fields[:len(fields)-1]
			}
			s = strings.Join(fields, " ")
			// a time on its own means today
			if s == "" {
				s = "today"
			}
		}
	}
	day, err := parseDay(s, StartOfDay(now))
	if err != nil {
		return nil, err
	}
	t := day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	return &t, nil
}

// StartOfDay returns midnight of t's day, in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func parseDay(s string, today time.Time) (time.Time, error) {
	for i, fmt := range []string{"today", "tomorrow"} {
		end := min(len(s), len(fmt))
		if s == fmt[:end] {
			return today.AddDate(0, 0, i), nil
		}
	}
	if s == "now" {
		return today, nil
	}
	for i := time.Sunday; i <= time.Saturday; i++ {
		fmt := strings.ToLower(i.String())
		end := min(len(s), len(fmt))
		if len(s) >= 2 && s == fmt[:end] {
			return nextWeekday(today, i), nil
		}
	}
	if days, err := parseRelative(s); err == nil {
		return today.AddDate(0, 0, days), nil
	}
	s = ordinal.ReplaceAllString(s, "$1")
	if t, err := parseAbsolute(s, today); err == nil {
		return t, nil
	}
	return time.Time{}, ErrParsing
}

// nextWeekday returns the next day falling on d, today included
func nextWeekday(t time.Time, d time.Weekday) time.Time {
	day := d - t.Weekday()
	if day < 0 {
		day += 7
	}
	return t.AddDate(0, 0, int(day))
}

type multiplier struct {
	key   string
	value int
}

var multipliers = []multiplier{
	{"days", 1},
	{"weeks", 7},
	{"months", 30},
	{"years", 365},
}

// parseRelative parses offsets like "in 3 days", "2w" or "10" into a
// number of days
func parseRelative(s string) (int, error) {
	s = strings.TrimPrefix(s, "in")
	s = strings.TrimSpace(s)
	var n int
	// parse quantity
	{
		i := 0
		for {
			if i >= len(s) {
				break
			}
			n1, err := strconv.Atoi(s[:i+1])
			// first one can not fail
			if err != nil {
				if i == 0 {
					return 0, err
				}
				break
			}
			n = n1
			i++
		}
		s = strings.TrimSpace(s[i:])
	}

	multiplier := 1
	if len(s) > 0 {
		multiplier = 0
		for _, m := range multipliers {
			end := min(len(m.key), len(s))
			if m.key[:end] == s {
				multiplier = m.value
				break
			}
		}
		if multiplier == 0 {
			return 0, errors.New("unexpected postfix")
		}
	}

	return n * multiplier, nil
}

func parseAnyFormat(s string) (time.Time, error) {
	for _, fmt := range formats {
		t, err := time.Parse(fmt, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("format not found")
}

// parseAbsolute fills in the month and year of now when s leaves them out.
// Such a date that already passed is moved to the next month or year.
func parseAbsolute(s string, now time.Time) (time.Time, error) {
	t, err := parseAnyFormat(s)
	if err != nil {
		return t, err
	}
	if t.Year() != 0 {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	if !hasMonth(s) {
		d := time.Date(now.Year(), now.Month(), t.Day(), 0, 0, 0, 0, now.Location())
		if d.Before(now) {
			d = time.Date(now.Year(), now.Month()+1, t.Day(), 0, 0, 0, 0, now.Location())
		}
		return d, nil
	}
	d := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
	if d.Before(now) {
		d = d.AddDate(1, 0, 0)
	}
	return d, nil
}

// hasMonth reports whether s names a month, as opposed to just a day
func hasMonth(s string) bool {
	return strings.ContainsAny(s, "/-") || strings.IndexFunc(s, func(r rune) bool {
		return r >= 'a' && r <= 'z'
	}) >= 0
}

// month names match case insensitively, so lowercased input is fine
var formats = []string{
	"2006-01-02",
	"_2",
	"_2/01",
	"_2/01/06",
	"_2/01/2006",
	"_2-01",
	"_2-01-06",
	"_2-01-2006",
	"Jan _2",
	"Jan _2 06",
	"Jan _2 2006",
	"January _2",
	"January _2 06",
	"January _2 2006",
	"_2 Jan",
	"_2 Jan 06",
	"_2 Jan 2006",
	"_2 January",
	"_2 January 06",
	"_2 January 2006",
}
