// Package utils provides small, dependency-free helpers used by the HTTP
// layer. This file turns raw query parameters into pagination windows.
//
// Both extractors are pure: they never consult the collection being paged,
// so out-of-range or inverted windows are returned exactly as supplied and
// are bounded later, when the store applies them.
package utils

import (
	"strconv"

	"github.com/tbourn/go-qa-backend/internal/apperr"
	"github.com/tbourn/go-qa-backend/internal/domain"
)

// Query parameter names.
const (
	ParamLimit  = "limit"
	ParamOffset = "offset"
	ParamStart  = "start"
	ParamEnd    = "end"
)

// ExtractPagination reads "limit" and "offset".
//
// Both keys must be present, otherwise apperr.KindMissingParameters is
// returned. A present value that is not an unsigned 32-bit integer yields
// apperr.KindParse carrying the strconv error.
//
// Example:
//
//	p, err := utils.ExtractPagination(map[string]string{"limit": "1", "offset": "10"})
//	// *p.Limit == 1, p.Offset == 10
func ExtractPagination(params map[string]string) (domain.Pagination, error) {
	rawLimit, okLimit := params[ParamLimit]
	rawOffset, okOffset := params[ParamOffset]
	if !okLimit || !okOffset {
		return domain.Pagination{}, apperr.MissingParameters()
	}

	limit, err := strconv.ParseUint(rawLimit, 10, 32)
	if err != nil {
		return domain.Pagination{}, apperr.Parse(err)
	}
	offset, err := strconv.ParseUint(rawOffset, 10, 32)
	if err != nil {
		return domain.Pagination{}, apperr.Parse(err)
	}

	l := uint32(limit)
	return domain.Pagination{Limit: &l, Offset: uint32(offset)}, nil
}

// ExtractRange reads "start" and "end" with the same presence and parse
// rules as ExtractPagination. {start:20, end:10} is returned as is.
func ExtractRange(params map[string]string) (domain.Range, error) {
	rawStart, okStart := params[ParamStart]
	rawEnd, okEnd := params[ParamEnd]
	if !okStart || !okEnd {
		return domain.Range{}, apperr.MissingParameters()
	}

	start, err := strconv.ParseUint(rawStart, 10, 64)
	if err != nil {
		return domain.Range{}, apperr.Parse(err)
	}
	end, err := strconv.ParseUint(rawEnd, 10, 64)
	if err != nil {
		return domain.Range{}, apperr.Parse(err)
	}
	return domain.Range{Start: start, End: end}, nil
}

// PaginationFromQuery picks the extractor for a non-empty query: the range
// variant when "start" or "end" is present, limit/offset otherwise.
func PaginationFromQuery(params map[string]string) (domain.Pagination, error) {
	_, hasStart := params[ParamStart]
	_, hasEnd := params[ParamEnd]
	if hasStart || hasEnd {
		r, err := ExtractRange(params)
		if err != nil {
			return domain.Pagination{}, err
		}
		return r.Pagination(), nil
	}
	return ExtractPagination(params)
}
