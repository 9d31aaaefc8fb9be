package httpx

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		query   string
		want    Page
		invalid []string
	}{
		{"", Page{Offset: 0, Limit: 10}, nil},
		{"skip=20&limit=5", Page{Offset: 20, Limit: 5}, nil},
		{"limit=1000", Page{Offset: 0, Limit: MaxLimit}, nil},
		{"skip=-1", Page{Offset: 0, Limit: 10}, []string{"skip"}},
		{"limit=0", Page{Offset: 0, Limit: 10}, []string{"limit"}},
		{"skip=a&limit=b", Page{Offset: 0, Limit: 10}, []string{"skip", "limit"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/books?"+tt.query, nil)
			got, details := ParsePage(r)
			assert.Equal(t, tt.want, got)

			var fields []string
			for _, d := range details {
				fields = append(fields, d.Field)
			}
			assert.Equal(t, tt.invalid, fields)
		})
	}
}

func TestClampLimit_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(-1000, 100000).Draw(t, "n")
		got := ClampLimit(n)
		if got < 1 || got > MaxLimit {
			t.Fatalf("ClampLimit(%d) = %d out of range", n, got)
		}
		if n >= 1 && n <= MaxLimit && got != n {
			t.Fatalf("ClampLimit(%d) = %d, want unchanged", n, got)
		}
	})
}

func TestPathID(t *testing.T) {
	for _, tc := range []struct {
		raw string
		id  int64
		ok  bool
	}{
		{"7", 7, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	} {
		r := httptest.NewRequest(http.MethodGet, "/books/x", nil)
		r.SetPathValue("id", tc.raw)
		id, ok := PathID(r, "id")
		assert.Equal(t, tc.ok, ok, tc.raw)
		assert.Equal(t, tc.id, id, tc.raw)
	}
}

type decodeTarget struct {
	Name   string  `json:"name" validate:"required,max=10"`
	Born   string  `json:"born" validate:"omitempty,date"`
	Copies int     `json:"copies" validate:"gte=0"`
	IDs    []int64 `json:"ids" validate:"dive,gt=0"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		ok     bool
		status int
		field  string
	}{
		{"valid", `{"name":"Ada","born":"1815-12-10","copies":1,"ids":[1]}`, true, 0, ""},
		{"missing name", `{"copies":1}`, false, http.StatusBadRequest, "name"},
		{"bad date", `{"name":"Ada","born":"10/12/1815"}`, false, http.StatusBadRequest, "born"},
		{"negative copies", `{"name":"Ada","copies":-1}`, false, http.StatusBadRequest, "copies"},
		{"zero id", `{"name":"Ada","ids":[0]}`, false, http.StatusBadRequest, "ids[0]"},
		{"unknown field", `{"name":"Ada","isbn":"x"}`, false, http.StatusBadRequest, ""},
		{"empty body", ``, false, http.StatusBadRequest, ""},
		{"malformed", `{"name":`, false, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(tt.body))

			var dst decodeTarget
			ok := DecodeJSON(w, r, &dst)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				return
			}
			assert.Equal(t, tt.status, w.Code)
			if tt.field != "" {
				assert.Contains(t, w.Body.String(), fmt.Sprintf(`"field":"%s"`, tt.field))
			}
		})
	}
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"name":"`+strings.Repeat("a", 100)+`"}`))
	r.Body = http.MaxBytesReader(w, r.Body, 16)

	var dst decodeTarget
	assert.False(t, DecodeJSON(w, r, &dst))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
