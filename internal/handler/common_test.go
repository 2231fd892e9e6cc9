package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func paramContext(rawQuery string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestDateParamDefaultsToToday(t *testing.T) {
	d, ok := dateParam(paramContext(""))
	if !ok {
		t.Fatal("empty date should be accepted")
	}
	if want := time.Now().UTC().Format("2006-01-02"); d != want {
		t.Fatalf("date = %q, want %q", d, want)
	}
}

func TestDateParamPassesThroughValidDate(t *testing.T) {
	d, ok := dateParam(paramContext("date=2026-09-15"))
	if !ok || d != "2026-09-15" {
		t.Fatalf("got (%q, %v)", d, ok)
	}
}

func TestDateParamRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"date=tomorrow", "date=2026-13-01", "date=2026-02-30", "date=15-09-2026"} {
		if _, ok := dateParam(paramContext(raw)); ok {
			t.Errorf("%s should be rejected", raw)
		}
	}
}
