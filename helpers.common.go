package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
)

type (
	ContextKey        string
	missingFieldError string
)

const (
	RequestIDPrefix      string     = "r"
	ContextRequestID     ContextKey = "request.id"
	ContextRequestNumber ContextKey = "request.number"
)

func (m missingFieldError) Error() string {
	return string(m) + " is required"
}

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val := ctx.Value(contextKey); val != nil {
		return val.(string)
	}
	return ""
}

// GetRequestNumberFromContext returns the request number set in
// the context. if not previously set then it returns 0.
func GetRequestNumberFromContext(ctx context.Context) uint64 {
	if val := ctx.Value(ContextRequestNumber); val != nil {
		return val.(uint64)
	}
	return 0
}

// AddBookRequest is the payload of the add-by-isbn endpoint.
type AddBookRequest struct {
	ISBN string `json:"isbn"`
}

// StatusUpdateRequest is the payload of the reading status endpoint.
type StatusUpdateRequest struct {
	ReadingStatus string `json:"reading_status"`
}

// DecodeRequestBody is a helper function to read the json content of any request body.
func DecodeRequestBody(r *http.Request, out interface{}) error {
	if r.Body == nil {
		return errors.New("invalid request body")
	}
	return json.NewDecoder(r.Body).Decode(out)
}

// ValidateManualBookRequestBody is a helper function to check if the content
// of a manual book creation request carries the required fields.
func ValidateManualBookRequestBody(book *Book) error {
	if len(book.ISBN) == 0 {
		return missingFieldError("isbn")
	}

	if len(book.Title) == 0 {
		return missingFieldError("title")
	}

	if len(book.Authors) == 0 {
		return missingFieldError("authors")
	}

	return nil
}

// ParsePageRequest reads the limit and skip query parameters. Absent or
// unparseable values fall back to the defaults through normalization.
func ParsePageRequest(values url.Values) PageRequest {
	var page PageRequest
	if raw := values.Get("limit"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			page.Limit = v
		}
	}
	if raw := values.Get("skip"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			page.Skip = v
		}
	}
	return page.Normalize()
}

// ParseSearchFilter reads the search criteria query parameters.
// An unknown reading_status token is rejected rather than ignored.
func ParseSearchFilter(values url.Values) (BookFilter, error) {
	filter := BookFilter{
		Query:    strings.TrimSpace(values.Get("query")),
		Title:    strings.TrimSpace(values.Get("title")),
		Author:   strings.TrimSpace(values.Get("author")),
		Category: strings.TrimSpace(values.Get("category")),
	}
	if raw := strings.TrimSpace(values.Get("reading_status")); raw != "" {
		status, err := ParseReadingStatus(raw)
		if err != nil {
			return BookFilter{}, err
		}
		filter.Status = status
	}
	return filter, nil
}

// HTTPStatusFromError maps domain sentinels onto response status codes.
// Anything unclassified stays an internal error so storage and driver
// failures never leak details past a 500.
func HTTPStatusFromError(err error) int {
	switch {
	case errors.Is(err, ErrInvalidISBN), errors.Is(err, ErrInvalidReadingStatus):
		return http.StatusBadRequest
	case errors.Is(err, ErrBookNotFound), errors.Is(err, ErrBookNotFoundInCatalog):
		return http.StatusNotFound
	case errors.Is(err, ErrBookAlreadyExists):
		return http.StatusConflict
	default:
		var missing missingFieldError
		if errors.As(err, &missing) {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}
}

// GetRequestSourceIP helps find the source IP of the caller.
func GetRequestSourceIP(r *http.Request) string {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip
	}

	// Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		netIP = net.ParseIP(ip)
		if netIP != nil {
			return ip
		}
	}

	// Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip
	}
	return ""
}

// IsAppRunningInDocker checks the existence of the .dockerenv
// file at the root directory and returns a boolean result. This
// helps know if the App is running in a docker container or not.
func IsAppRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}
