package adapthttp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	adapthttp "vbay/internal/adapter/http"
	"vbay/internal/adapter/localstore"
	"vbay/internal/adapter/memory"
	"vbay/internal/adapter/sso"
	"vbay/internal/app"

	"golang.org/x/crypto/bcrypt"
)

// ---------------------------------------------------------------------------
// Test-server helper
// ---------------------------------------------------------------------------

func newTestServer(t *testing.T, opts ...func(*adapthttp.Server)) (*httptest.Server, *memory.DB) {
	t.Helper()

	db := memory.New()
	db.Seed(localstore.SeedListings())

	cart := app.NewCartService(db.NewCartRepo())
	listings := app.NewListingService(db, cart)
	auth := app.NewAuthService(&sso.Simulator{}, db, cart)

	webDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(webDir, "index.html"), []byte("<html></html>"), 0o600); err != nil {
		t.Fatal(err)
	}

	srv := adapthttp.New(listings, cart, auth, webDir).WithoutAuth()
	for _, opt := range opts {
		opt(srv)
	}
	return httptest.NewServer(srv.Handler()), db
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return m
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestHealthEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["ok"] != true {
		t.Fatalf("expected ok=true, got %v", body["ok"])
	}
}

func TestListListings(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "all", query: "", want: 6},
		{name: "free text", query: "?q=kayak", want: 1},
		{name: "category", query: "?category=Furniture", want: 1},
		{name: "category all sentinel", query: "?category=All", want: 6},
		{name: "conjunctive filters", query: "?category=Vehicles&condition=Good", want: 1},
		{name: "no match", query: "?q=zeppelin", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/api/listings" + tt.query)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close() //nolint:errcheck

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.StatusCode)
			}
			body := decodeBody(t, resp)
			items, _ := body["items"].([]any)
			if len(items) != tt.want {
				t.Fatalf("expected %d items, got %d", tt.want, len(items))
			}
		})
	}
}

func TestListListingsPriceSort(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/listings?sort=price-asc")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body := decodeBody(t, resp)
	items, _ := body["items"].([]any)
	var last float64 = -1
	for _, raw := range items {
		item := raw.(map[string]any)
		price := item["price"].(float64)
		if price < last {
			t.Fatalf("items not sorted by ascending price")
		}
		last = price
	}
}

func TestGetListing(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/listings/1")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp2, err := http.Get(ts.URL + "/api/listings/no-such-id")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp2.Body.Close() //nolint:errcheck

	if resp2.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", resp2.StatusCode)
	}
}

func TestCreateListing(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	payload := map[string]any{
		"title":       "Secchi disk, barely used",
		"description": "Standard 20cm disk with 30m line.",
		"price":       25.0,
		"category":    "Miscellaneous",
		"condition":   "Like New",
		"imageUrls":   []string{"https://example.edu/secchi.jpg"},
	}
	resp := postJSON(t, ts.URL+"/api/listings", payload)
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["id"] == "" {
		t.Fatal("created listing must carry a generated id")
	}
	if body["sellerId"] != app.DebugUser.ID {
		t.Fatalf("seller must be stamped from the session, got %v", body["sellerId"])
	}
	if body["createdAt"] == "" {
		t.Fatal("created listing must carry a timestamp")
	}
}

func TestCreateListingRejectsInvalid(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{name: "missing title", payload: map[string]any{"price": 10.0, "category": "Furniture", "condition": "Good"}},
		{name: "negative price", payload: map[string]any{"title": "x", "price": -1.0, "category": "Furniture", "condition": "Good"}},
		{name: "unknown category", payload: map[string]any{"title": "x", "price": 10.0, "category": "Spaceships", "condition": "Good"}},
		{name: "unknown condition", payload: map[string]any{"title": "x", "price": 10.0, "category": "Furniture", "condition": "Mint"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+"/api/listings", tt.payload)
			defer resp.Body.Close() //nolint:errcheck
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestUpdateListingOwnership(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	payload := map[string]any{
		"title":     "Honda Civic 2015, price drop",
		"price":     8000.0,
		"category":  "Vehicles",
		"condition": "Good",
		"imageUrls": []string{"https://example.edu/civic.jpg"},
	}
	body, _ := json.Marshal(payload)

	// Listing 1 belongs to another seller, so the debug user may not edit it.
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/listings/1", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for a non-owner edit, got %d", resp.StatusCode)
	}
}

func TestCartRoundTrip(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/cart/3", nil)
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	// Adding the same listing twice must conflict.
	dup := postJSON(t, ts.URL+"/api/cart/3", nil)
	defer dup.Body.Close() //nolint:errcheck
	if dup.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate add, got %d", dup.StatusCode)
	}

	get, err := http.Get(ts.URL + "/api/cart")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer get.Body.Close() //nolint:errcheck

	body := decodeBody(t, get)
	items, _ := body["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 cart item, got %d", len(items))
	}
	if body["total"].(float64) <= 0 {
		t.Fatalf("expected a positive total, got %v", body["total"])
	}

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/cart/3", nil)
	if err != nil {
		t.Fatal(err)
	}
	del, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer del.Body.Close() //nolint:errcheck
	if del.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", del.StatusCode)
	}
}

func TestCartAddUnknownListing(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/cart/no-such-id", nil)
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestContactSeller(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/cart/4", nil)
	resp.Body.Close() //nolint:errcheck

	contact, err := http.Get(ts.URL + "/api/cart/contact/4")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer contact.Body.Close() //nolint:errcheck

	body := decodeBody(t, contact)
	link, _ := body["mailto"].(string)
	if !strings.HasPrefix(link, "mailto:") {
		t.Fatalf("expected a mailto link, got %q", link)
	}
	if !strings.Contains(link, "VBay%20Inquiry") {
		t.Fatalf("expected encoded subject in link, got %q", link)
	}

	all, err := http.Get(ts.URL + "/api/cart/contact-all")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer all.Body.Close() //nolint:errcheck
	if link, _ := decodeBody(t, all)["mailto"].(string); !strings.HasPrefix(link, "mailto:") {
		t.Fatalf("expected a mailto link, got %q", link)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	db := memory.New()
	db.Seed(localstore.SeedListings())
	cart := app.NewCartService(db.NewCartRepo())
	listings := app.NewListingService(db, cart)
	auth := app.NewAuthService(&sso.Simulator{}, db, cart)

	srv := adapthttp.New(listings, cart, auth, t.TempDir())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/cart/1", nil)
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", resp.StatusCode)
	}

	get, err := http.Get(ts.URL + "/api/listings")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer get.Body.Close() //nolint:errcheck
	if get.StatusCode != http.StatusOK {
		t.Fatalf("browsing must stay public, got %d", get.StatusCode)
	}
}

func TestDebugLoginFlow(t *testing.T) {
	db := memory.New()
	db.Seed(localstore.SeedListings())
	cart := app.NewCartService(db.NewCartRepo())
	listings := app.NewListingService(db, cart)

	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	auth := app.NewAuthService(&sso.Simulator{}, db, cart).WithDebugLogin(string(hash))

	srv := adapthttp.New(listings, cart, auth, t.TempDir())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	client := newCookieClient(t)

	resp, err := client.Post(ts.URL+"/api/auth/debug", "application/json",
		strings.NewReader(`{"passphrase":"letmein"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	me, err := client.Get(ts.URL + "/api/auth/me")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer me.Body.Close() //nolint:errcheck
	if me.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /auth/me after login, got %d", me.StatusCode)
	}
	if body := decodeBody(t, me); body["email"] != app.DebugUser.Email {
		t.Fatalf("unexpected user: %v", body)
	}

	// Fill the cart, then log out; the cart must come back empty.
	add, err := client.Post(ts.URL+"/api/cart/2", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	add.Body.Close() //nolint:errcheck

	out, err := client.Post(ts.URL+"/api/auth/logout", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	out.Body.Close() //nolint:errcheck

	me2, err := client.Get(ts.URL + "/api/auth/me")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer me2.Body.Close() //nolint:errcheck
	if me2.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", me2.StatusCode)
	}

	items, err := db.NewCartRepo().All(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("logout must clear the cart, got %d items", len(items))
	}
}

func TestDebugLoginDisabled(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/auth/debug", "application/json",
		strings.NewReader(`{"passphrase":"anything"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 when debug login is off, got %d", resp.StatusCode)
	}
}

func TestSSOLoginRedirect(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(ts.URL + "/api/auth/login")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	loc := resp.Header.Get("Location")
	if !strings.Contains(loc, "ticket=ST-") || !strings.Contains(loc, "state=") {
		t.Fatalf("redirect must carry ticket and state, got %q", loc)
	}
}

func TestCallbackRejectsStateMismatch(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/auth/callback?ticket=ST-X&state=bogus")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 on state mismatch, got %d", resp.StatusCode)
	}
}

func TestSPAFallback(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/cart")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("expected index.html fallback, got content type %q", ct)
	}
}

func newCookieClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Jar: jar}
}
