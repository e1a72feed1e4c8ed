package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr error
	}{
		{"1", 1, nil},
		{"42", 42, nil},
		{"007", 7, nil},
		{"", 0, ErrIDInvalid},
		{"0", 0, ErrIDInvalid},
		{"-1", 0, ErrIDInvalid},
		{"+1", 0, ErrIDInvalid},
		{" 1", 0, ErrIDInvalid},
		{"abc", 0, ErrIDInvalid},
		{"1.5", 0, ErrIDInvalid},
		{"99999999999999999999", 0, ErrIDInvalid},
	}

	for _, tt := range tests {
		got, err := ParseID(tt.raw)
		if err != tt.wantErr || got != tt.want {
			t.Errorf("ParseID(%q) = %d, %v; want %d, %v", tt.raw, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestValidateLookupKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{"numeric", "25", nil},
		{"name", "pikachu", nil},
		{"name with spaces", "Francis of Assisi", nil},
		{"unicode name", "Teresa de Ávila", nil},
		{"blank", "   ", ErrLookupKeyEmpty},
		{"too long", strings.Repeat("a", MaxLookupKeyLength+1), ErrLookupKeyTooLong},
		{"control character", "abc\x00def", ErrLookupKeyControl},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateLookupKey(tt.key); err != tt.wantErr {
				t.Errorf("ValidateLookupKey(%q) = %v, want %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestPathID(t *testing.T) {
	r := chi.NewRouter()
	r.With(PathID("id")).Delete("/saints/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/saints/3", http.StatusNoContent},
		{"/saints/abc", http.StatusBadRequest},
		{"/saints/0", http.StatusBadRequest},
		{"/saints/-2", http.StatusBadRequest},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, tt.path, nil))
		if rec.Code != tt.wantStatus {
			t.Errorf("DELETE %s = %d, want %d", tt.path, rec.Code, tt.wantStatus)
		}
	}
}

func TestPathLookupKey(t *testing.T) {
	r := chi.NewRouter()
	r.With(PathLookupKey("key")).Get("/creatures/{key}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/creatures/pikachu", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("valid key status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/creatures/%20%20", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank key status = %d, want 400", rec.Code)
	}
}
