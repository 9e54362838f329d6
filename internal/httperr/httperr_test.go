package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestIsBusinessUnwraps(t *testing.T) {
	err := fmt.Errorf("book: %w", Conflict(CodeAlreadyBooked, "taken"))
	if !IsBusiness(err, CodeAlreadyBooked) {
		t.Fatal("expected wrapped business error to match")
	}
	if IsBusiness(err, CodeNotAvailable) {
		t.Fatal("unexpected code match")
	}
	if CodeOf(errors.New("boom")) != CodeInternal {
		t.Fatal("plain errors must map to InternalError")
	}
	if CodeOf(nil) != "ok" {
		t.Fatal("nil must map to ok")
	}
}

func TestStatusFor(t *testing.T) {
	tests := map[Kind]int{
		KindValidation: http.StatusBadRequest,
		KindConflict:   http.StatusBadRequest,
		KindNotFound:   http.StatusNotFound,
		KindForbidden:  http.StatusForbidden,
		Kind("other"):  http.StatusInternalServerError,
	}
	for kind, want := range tests {
		if got := StatusFor(kind); got != want {
			t.Fatalf("StatusFor(%s) = %d, want %d", kind, got, want)
		}
	}
}

func TestRespondLogsOnlyInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantLogged int
	}{
		{"conflict", Conflict(CodeAlreadyBooked, "Slot already booked"), http.StatusBadRequest, CodeAlreadyBooked, 0},
		{"not found", NotFoundErr(CodeServiceNotFound, ""), http.StatusNotFound, CodeServiceNotFound, 0},
		{"forbidden", Forbidden(CodeNotOwner, "nope"), http.StatusForbidden, CodeNotOwner, 0},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, CodeInternal, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.ErrorLevel)
			logger := zap.New(core)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Respond(c, logger, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var body HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.wantCode || body.Message == "" {
				t.Fatalf("unexpected body %+v", body)
			}
			if logs.Len() != tt.wantLogged {
				t.Fatalf("logged %d entries, want %d", logs.Len(), tt.wantLogged)
			}
		})
	}
}
