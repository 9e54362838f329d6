package dto

import (
	"math"
	"strconv"

	"github.com/hairsol/booking-engine/internal/httperr"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PageRequest struct {
	Page     int
	PageSize int
}

func FirstPage() PageRequest {
	return PageRequest{Page: 1, PageSize: DefaultPageSize}
}

// ParsePage reads ?page=&page_size=; empty values fall back to the defaults.
func ParsePage(pageStr, sizeStr string) (PageRequest, error) {
	req := FirstPage()

	if pageStr != "" {
		n, err := strconv.Atoi(pageStr)
		if err != nil || n < 1 {
			return PageRequest{}, httperr.Validation(httperr.CodeInvalidPage, "page must be a positive integer.")
		}
		req.Page = n
	}

	if sizeStr != "" {
		n, err := strconv.Atoi(sizeStr)
		if err != nil || n < 1 || n > MaxPageSize {
			return PageRequest{}, httperr.Validation(httperr.CodeInvalidPage, "page_size must be between 1 and 100.")
		}
		req.PageSize = n
	}

	if req.Page-1 > math.MaxInt/req.PageSize {
		return PageRequest{}, httperr.Validation(httperr.CodeInvalidPage, "page is out of range.")
	}

	return req, nil
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type Page[T any] struct {
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Results  []T   `json:"results"`
}

func NewPage[T any](req PageRequest, items []T, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Count:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Results:  items,
	}
}

// MapPage converts the items of a page while keeping its counters.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Results))
	for i, item := range p.Results {
		out[i] = fn(item)
	}
	return Page[U]{
		Count:    p.Count,
		Page:     p.Page,
		PageSize: p.PageSize,
		Results:  out,
	}
}
