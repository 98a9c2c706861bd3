package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// StatsResponseWriter is a wrapper for http.ResponseWriter. It is used
// to record response details like status code and body size so the
// stats middleware can aggregate per-status counters.
type StatsResponseWriter struct {
	http.ResponseWriter
	code  int
	bytes int
	wrote bool
}

// NewStatsResponseWriter provides StatsResponseWriter with 200 as status code.
func NewStatsResponseWriter(rw http.ResponseWriter) *StatsResponseWriter {
	return &StatsResponseWriter{
		ResponseWriter: rw,
		code:           200,
	}
}

// WriteHeader implements http.WriteHeader interface.
func (sw *StatsResponseWriter) WriteHeader(code int) {
	if !sw.wrote {
		sw.code = code
		sw.wrote = true
		sw.ResponseWriter.WriteHeader(code)
	}
}

// Write implements http.Write interface.
func (sw *StatsResponseWriter) Write(bytes []byte) (int, error) {
	if !sw.wrote {
		sw.WriteHeader(sw.code)
	}
	n, err := sw.ResponseWriter.Write(bytes)
	sw.bytes += n
	return n, err
}

// Status returns the written status code.
func (sw *StatsResponseWriter) Status() int {
	return sw.code
}

// Bytes returns bytes written as response body.
func (sw *StatsResponseWriter) Bytes() int {
	return sw.bytes
}

// Unwrap returns the native response writer and is used by
// the http.ResponseController during its operation.
func (sw *StatsResponseWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}

// SearchCriteria echoes the criteria used to build a search response.
type SearchCriteria struct {
	Query         string `json:"query,omitempty"`
	Title         string `json:"title,omitempty"`
	Author        string `json:"author,omitempty"`
	Category      string `json:"category,omitempty"`
	ReadingStatus string `json:"reading_status,omitempty"`
}

// APIError is the data model sent when an error occurred during request processing.
type APIError struct {
	RequestID string      `json:"requestid"`
	Status    int         `json:"status"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
}

// APIResponse is the data model sent when a request succeed. The
// pagination and criteria blocks only ship on listing and search calls.
type APIResponse struct {
	RequestID  string          `json:"requestid"`
	Status     int             `json:"status"`
	Message    string          `json:"message"`
	Pagination *Pagination     `json:"pagination,omitempty"`
	Criteria   *SearchCriteria `json:"criteria,omitempty"`
	Data       interface{}     `json:"data"`
}

func NewAPIError(requestid string, status int, message string, data interface{}) *APIError {
	return &APIError{
		RequestID: requestid,
		Status:    status,
		Message:   message,
		Data:      data,
	}
}

func GenericResponse(requestid string, status int, message string, data interface{}) *APIResponse {
	return &APIResponse{
		RequestID: requestid,
		Status:    status,
		Message:   message,
		Data:      data,
	}
}

// PaginatedResponse shapes a listing response with its pagination block
// and the optional search criteria echo.
func PaginatedResponse(requestid string, status int, message string, books []Book, pagination Pagination, criteria *SearchCriteria) *APIResponse {
	return &APIResponse{
		RequestID:  requestid,
		Status:     status,
		Message:    message,
		Pagination: &pagination,
		Criteria:   criteria,
		Data:       books,
	}
}

// WriteErrorResponse is used to send error response to client. In case the client closes the
// request, it logs the stats with the Nginx non standard status code 499 (Client Closed Request).
// In case of request processing timeout we set the status code to 504 which will be used to log
// the stats. The timeout middleware already kicked-in and sent a json message to the client.
func WriteErrorResponse(ctx context.Context, w http.ResponseWriter, errResp *APIError) error {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			w.WriteHeader(http.StatusGatewayTimeout)
		} else {
			w.WriteHeader(499)
		}
		return ctx.Err()
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(errResp.Status)
	return json.NewEncoder(w).Encode(errResp)
}

// WriteResponse is used to send success api response to client. It sets the status code to 499
// in case client cancelled the request, and to 504 if the request processing timed out.
func WriteResponse(ctx context.Context, w http.ResponseWriter, resp *APIResponse) error {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			w.WriteHeader(http.StatusGatewayTimeout)
		} else {
			w.WriteHeader(499)
		}
		return ctx.Err()
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(resp.Status)
	return json.NewEncoder(w).Encode(resp)
}

// StatusResponse is the data model sent when status endpoint is called.
type StatusResponse struct {
	RequestID string `json:"requestid"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}
