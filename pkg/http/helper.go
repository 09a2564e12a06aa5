package http

import (
	"net/http"
	"retreat/pkg/config"
	apperrors "retreat/pkg/errors"
	"retreat/pkg/model"
	"strconv"
)

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = v
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ExtractPositiveInt parses an optional non-negative integer query parameter.
// Missing parameters yield 0.
func ExtractPositiveInt(r *http.Request, name string) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, apperrors.InvalidInput("invalid " + name + " parameter: " + s)
	}
	return v, nil
}

// ExtractInterval reads check_in/check_out from the query. It returns nil when
// neither is present; supplying only one of them is an error.
func ExtractInterval(r *http.Request) (*model.Interval, error) {
	query := r.URL.Query()
	checkIn, checkOut := query.Get("check_in"), query.Get("check_out")
	if checkIn == "" && checkOut == "" {
		return nil, nil
	}
	if checkIn == "" || checkOut == "" {
		return nil, apperrors.InvalidDateRange("both check_in and check_out are required")
	}

	interval, err := model.ParseInterval(checkIn, checkOut)
	if err != nil {
		return nil, apperrors.InvalidDateRange(err.Error()).WithCause(err)
	}
	return &interval, nil
}
