package utils

import (
	"fmt"
	rndm "math/rand"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")
var upperRunes = []rune("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

func randomUpper(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = upperRunes[rndm.Intn(len(upperRunes))]
	}
	return string(b)
}

// NewBookingID returns an id like BK1712345678901AB3CD.
func NewBookingID() string {
	return fmt.Sprintf("BK%d%s", time.Now().UnixMilli(), randomUpper(5))
}

// NewTransactionID returns an id like TXN1712345678901AB3CD.
func NewTransactionID() string {
	return fmt.Sprintf("TXN%d%s", time.Now().UnixMilli(), randomUpper(5))
}

// NewWalkInID returns an id like WI1712345678901AB3CD.
func NewWalkInID() string {
	return fmt.Sprintf("WI%d%s", time.Now().UnixMilli(), randomUpper(5))
}

// --- Validation ---

var rwandanPhoneRe = regexp.MustCompile(`^(\+250|250|0)?[0-9]{9}$`)
var emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

func ValidRwandanPhone(phone string) bool {
	return rwandanPhoneRe.MatchString(phone)
}

func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// --- Pagination ---

// ParsePagination reads page/limit query params and returns skip and limit
// clamped to maxLimit.
func ParsePagination(r *http.Request, defLimit, maxLimit int64) (skip, limit int64) {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 {
		limit = defLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return (page - 1) * limit, limit
}

// --- Dates ---

// DayBounds returns the [00:00:00.000, 23:59:59.999] window for d in d's
// location, matching how daily earnings windows are defined.
func DayBounds(d time.Time) (start, end time.Time) {
	start = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	end = start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

// WeekdayKey resolves a date to the lowercase weekday name used as the key
// of a weekly availability map.
func WeekdayKey(d time.Time) string {
	return strings.ToLower(d.Weekday().String())
}
