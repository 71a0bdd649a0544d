package ctx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appctx "github.com/buildmaster/storefront/pkg/ctx"
)

func serve(method, target, body string, h appctx.HandlerFunc) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	appctx.Wrap(h)(rec, req)
	return rec
}

func TestSuccessEnvelope(t *testing.T) {
	rec := serve(http.MethodGet, "/", "", func(c *appctx.Context) {
		c.Success(map[string]any{"id": 1})
	})
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":200`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestCreatedEnvelope(t *testing.T) {
	rec := serve(http.MethodPost, "/", "", func(c *appctx.Context) {
		c.Created(map[string]any{"id": 7})
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestQueryHelpers(t *testing.T) {
	serve(http.MethodGet, "/components?page=3", "", func(c *appctx.Context) {
		if got := c.Query("page"); got != "3" {
			t.Errorf("Query(page) = %q", got)
		}
		if got := c.DefaultQuery("limit", "20"); got != "20" {
			t.Errorf("DefaultQuery(limit) = %q", got)
		}
		c.Success(nil)
	})
}

func TestBindJSONValid(t *testing.T) {
	body := `{"componentId":5,"quantity":2}`
	rec := serve(http.MethodPost, "/cart/items", body, func(c *appctx.Context) {
		var input struct {
			ComponentID uint `json:"componentId" validate:"required,gt=0"`
			Quantity    int  `json:"quantity"    validate:"required,gte=1,lte=99"`
		}
		if !c.BindJSON(&input) {
			t.Error("expected BindJSON to succeed")
			return
		}
		if input.ComponentID != 5 || input.Quantity != 2 {
			t.Errorf("bound %+v", input)
		}
		c.Success(nil)
	})
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestBindJSONInvalidSends422(t *testing.T) {
	rec := serve(http.MethodPost, "/cart/items", `{"quantity":0}`, func(c *appctx.Context) {
		var input struct {
			ComponentID uint `json:"componentId" validate:"required,gt=0"`
			Quantity    int  `json:"quantity"    validate:"required,gte=1"`
		}
		if c.BindJSON(&input) {
			t.Error("expected BindJSON to fail")
		}
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d (%s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "componentId") {
		t.Errorf("expected field errors, got: %s", rec.Body.String())
	}
}

func TestBindJSONMalformedSends400(t *testing.T) {
	rec := serve(http.MethodPost, "/", `{"componentId":`, func(c *appctx.Context) {
		var input struct {
			ComponentID uint `json:"componentId"`
		}
		if c.BindJSON(&input) {
			t.Error("expected BindJSON to fail on malformed JSON")
		}
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestErrorHelpers(t *testing.T) {
	cases := []struct {
		name string
		h    appctx.HandlerFunc
		want int
	}{
		{"not found", func(c *appctx.Context) { c.NotFound("Component not found") }, http.StatusNotFound},
		{"forbidden", func(c *appctx.Context) { c.Forbidden() }, http.StatusForbidden},
		{"unauthorized", func(c *appctx.Context) { c.Unauthorized() }, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		rec := serve(http.MethodGet, "/", "", tc.h)
		if rec.Code != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, rec.Code)
		}
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.1")
	appctx.Wrap(func(c *appctx.Context) {
		if ip := c.ClientIP(); ip != "1.2.3.4" {
			t.Errorf("ClientIP = %q", ip)
		}
		c.Success(nil)
	})(rec, req)
}
