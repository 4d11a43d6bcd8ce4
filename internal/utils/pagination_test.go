package utils

import (
	"errors"
	"testing"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/domain"
)

func TestExtractPagination_Missing(t *testing.T) {
	cases := []map[string]string{
		{},
		{"limit": "1"},
		{"offset": "1"},
		{"limit": "x"}, // missing wins over parse
		{"foo": "bar"},
	}
	for _, params := range cases {
		_, err := ExtractPagination(params)
		if !errors.Is(err, apperr.ErrMissingParameters) {
			t.Fatalf("ExtractPagination(%v) err = %v; want missing", params, err)
		}
	}
}

func TestExtractPagination_Parse(t *testing.T) {
	cases := []map[string]string{
		{"limit": "x", "offset": "0"},
		{"limit": "1", "offset": "-3"},
		{"limit": "-1", "offset": "x"},
		{"limit": "", "offset": "0"},
		{"limit": "4294967296", "offset": "0"}, // > uint32
		{"limit": " 1", "offset": "0"},
	}
	for _, params := range cases {
		_, err := ExtractPagination(params)
		if !errors.Is(err, apperr.ErrParse) {
			t.Fatalf("ExtractPagination(%v) err = %v; want parse", params, err)
		}
		if errors.Unwrap(err) == nil {
			t.Fatalf("parse error should carry the strconv cause")
		}
	}
}

func TestExtractPagination_OK(t *testing.T) {
	p, err := ExtractPagination(map[string]string{"limit": "1", "offset": "10", "extra": "ignored"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Limit == nil || *p.Limit != 1 || p.Offset != 10 {
		t.Fatalf("got %+v", p)
	}
}

func TestExtractRange_Unclamped(t *testing.T) {
	r, err := ExtractRange(map[string]string{"start": "20", "end": "10"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if r != (domain.Range{Start: 20, End: 10}) {
		t.Fatalf("got %+v; want {20 10}", r)
	}

	if _, err := ExtractRange(map[string]string{"start": "1"}); !errors.Is(err, apperr.ErrMissingParameters) {
		t.Fatalf("want missing, got %v", err)
	}
	if _, err := ExtractRange(map[string]string{"start": "1", "end": "z"}); !errors.Is(err, apperr.ErrParse) {
		t.Fatalf("want parse, got %v", err)
	}
}

func TestPaginationFromQuery(t *testing.T) {
	p, err := PaginationFromQuery(map[string]string{"start": "1", "end": "3"})
	if err != nil || p.Offset != 1 || *p.Limit != 2 {
		t.Fatalf("range variant = %+v, %v", p, err)
	}
	p, err = PaginationFromQuery(map[string]string{"limit": "2", "offset": "0"})
	if err != nil || p.Offset != 0 || *p.Limit != 2 {
		t.Fatalf("limit variant = %+v, %v", p, err)
	}
	if _, err := PaginationFromQuery(map[string]string{"end": "3"}); !errors.Is(err, apperr.ErrMissingParameters) {
		t.Fatalf("lone end should be missing, got %v", err)
	}
}
