package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/buildmaster/storefront/pkg/router"
)

func okHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body)) //nolint:errcheck
	}
}

func TestNamedRoutesAndURL(t *testing.T) {
	r := router.New()
	r.Get("/components/{id}", "components.show", okHandler("show"))

	path, ok := r.Path("components.show")
	if !ok || path != "/components/{id}" {
		t.Errorf("Path = %q, %v", path, ok)
	}

	url, err := r.URL("components.show", map[string]string{"id": "42"})
	if err != nil || url != "/components/42" {
		t.Errorf("URL = %q, %v", url, err)
	}

	if _, err := r.URL("components.show", nil); err == nil {
		t.Error("expected error for missing parameters")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestGroupPrefixAndMiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	api := r.Group("/api", tag("group"))
	cart := api.Group("/cart", tag("nested"))
	cart.Get("/items", "cart.items", okHandler("items"), tag("route"))

	req := httptest.NewRequest(http.MethodGet, "/api/cart/items", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "items" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
	if len(order) != 3 || order[0] != "group" || order[1] != "nested" || order[2] != "route" {
		t.Errorf("middleware order = %v", order)
	}
}

func TestRoutesAreSortedByPath(t *testing.T) {
	r := router.New()
	r.Post("/checkout", "checkout", okHandler(""))
	r.Get("/builds", "builds.index", okHandler(""))
	r.Get("/builds/{id}", "builds.show", okHandler(""))

	entries := r.Routes()
	if len(entries) != 3 {
		t.Fatalf("Routes returned %d entries", len(entries))
	}
	if entries[0].Path != "/builds" || entries[1].Path != "/builds/{id}" || entries[2].Path != "/checkout" {
		t.Errorf("unexpected order: %+v", entries)
	}
}

func TestUnnamedRouteIsServedButNotListed(t *testing.T) {
	r := router.New()
	r.Get("/ping", "", okHandler("pong"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Body.String() != "pong" {
		t.Fatalf("body = %q", rec.Body.String())
	}
	if len(r.Routes()) != 0 {
		t.Errorf("unnamed route leaked into Routes(): %+v", r.Routes())
	}
}

func TestMethodRouting(t *testing.T) {
	r := router.New()
	r.Patch("/cart/items/{id}", "cart.items.update", okHandler("patched"))

	req := httptest.NewRequest(http.MethodGet, "/cart/items/1", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET on PATCH route = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPatch, "/cart/items/1", nil)
	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "patched" {
		t.Errorf("PATCH = %d %q", rec.Code, rec.Body.String())
	}
}
