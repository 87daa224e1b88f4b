package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// PathInt64 положительный целочисленный параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	value, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return value, nil
}

// PathUUID параметр пути в формате UUID
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// ParseDate дата в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return date, nil
}

// ParseOptionalDate пустая строка - nil
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	date, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// ParseTime время в формате HH:MM; пустая строка допустима
func ParseTime(s string) (types.TimeString, error) {
	if s == "" {
		return "", nil
	}
	t, err := types.NewTimeStringFromString(s)
	if err != nil {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t, nil
}
