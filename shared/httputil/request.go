package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

const maxBodyBytes = 1 << 20

// ParseJSON decodes JSON from the request body into dest.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// DecodeAndValidate parses the body into dest and validates it, writing a 400
// response and returning false on failure.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, v *Validator, dest any) bool {
	if err := ParseJSON(w, r, dest); err != nil {
		WriteErrorMessage(w, http.StatusBadRequest, err.Error())
		return false
	}

	if details := v.Struct(dest); details != nil {
		WriteValidationErrors(w, details)
		return false
	}

	return true
}

// QueryInt returns the integer query parameter key, or def when absent or malformed.
func QueryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}

	return v
}

// QueryFloat returns the float query parameter key, or nil when absent or malformed.
func QueryFloat(r *http.Request, key string) *float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	return &v
}

// QueryString returns a pointer to the query parameter key, or nil when absent.
func QueryString(r *http.Request, key string) *string {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}

	return &raw
}
