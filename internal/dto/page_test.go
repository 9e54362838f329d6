package dto

import (
	"testing"

	"github.com/hairsol/booking-engine/internal/httperr"
)

func TestParsePage(t *testing.T) {
	req, err := ParsePage("", "")
	if err != nil || req.Page != 1 || req.PageSize != DefaultPageSize || req.Offset() != 0 {
		t.Fatalf("defaults: %+v %v", req, err)
	}

	req, err = ParsePage("3", "20")
	if err != nil || req.Offset() != 40 {
		t.Fatalf("explicit: %+v %v", req, err)
	}

	for _, bad := range [][2]string{
		{"0", ""},
		{"x", ""},
		{"", "0"},
		{"", "101"},
		{"184467440737095517", "100"},
		{"9223372036854775807", ""},
	} {
		if _, err := ParsePage(bad[0], bad[1]); !httperr.IsBusiness(err, httperr.CodeInvalidPage) {
			t.Fatalf("ParsePage(%q, %q) err = %v", bad[0], bad[1], err)
		}
	}
}

func TestNewPageNeverReturnsNilResults(t *testing.T) {
	p := NewPage[int](FirstPage(), nil, 0)
	if p.Results == nil {
		t.Fatal("results must encode as []")
	}
}

func TestParsePageOffsetNeverNegative(t *testing.T) {
	req, err := ParsePage("92233720368547758", "100")
	if err != nil {
		t.Fatalf("largest page in range: %v", err)
	}
	if req.Offset() < 0 {
		t.Fatalf("offset overflowed: %d", req.Offset())
	}
}
