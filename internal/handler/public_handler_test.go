package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/folio/internal/content"
	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

func testLibrary() *content.Library {
	return content.NewLibrary(content.Data{
		Hero: content.Hero{Name: "Ada", LastName: "Lovelace"},
		References: []content.Reference{
			{Name: "Grace Hopper"},
			{Name: "Alan Turing"},
			{Name: "Barbara Liskov"},
			{Name: "Edsger Dijkstra"},
		},
	})
}

func newPublicEngine(stats *statsStub) (*gin.Engine, *API, *stubHTMLRender) {
	gin.SetMode(gin.TestMode)
	opts := Options{Store: content.NewStaticStore(testLibrary())}
	if stats != nil {
		opts.Stats = stats
	}
	api := NewAPI(opts)

	r := gin.New()
	htmlRender := &stubHTMLRender{}
	r.HTMLRender = htmlRender
	r.GET("/", api.ShowHome)
	r.POST("/v/:view/viewport", api.UpdateViewport)
	r.POST("/v/:view/teardown", api.Teardown)
	r.POST("/v/:view/sections/:section/reveal/:key", api.Reveal)
	r.POST("/v/:view/sections/:section/tab/:tab", api.SwitchTab)
	return r, api, htmlRender
}

func postForm(r http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestShowHomeMountsViewAndRecordsPageView(t *testing.T) {
	stats := &statsStub{}
	r, api, htmlRender := newPublicEngine(stats)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: visitorCookieName, Value: "visitor-1"})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if api.Mounts().Len() != 1 {
		t.Fatalf("expected one mounted view, got %d", api.Mounts().Len())
	}
	if len(stats.pageViews) != 1 || stats.pageViews[0] != "visitor-1" {
		t.Fatalf("expected page view for visitor-1, got %v", stats.pageViews)
	}

	rendered := htmlRender.last(t)
	if rendered.name != "index.html" {
		t.Fatalf("expected index.html, got %s", rendered.name)
	}
	data := rendered.data.(gin.H)
	if data["title"] != "Ada Lovelace" {
		t.Fatalf("unexpected title %v", data["title"])
	}
	sections := data["sections"].([]service.SectionView)
	if len(sections) != 1 || sections[0].ID != content.SectionReferences || len(sections[0].Cards) != 3 {
		t.Fatalf("unexpected sections %+v", sections)
	}
	nav := data["nav"].([]navLink)
	if len(nav) != 2 || nav[1].ID != content.SectionReferences {
		t.Fatalf("unexpected nav %+v", nav)
	}
}

func TestShowHomeIssuesVisitorCookie(t *testing.T) {
	r, _, _ := newPublicEngine(nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	var found bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == visitorCookieName && c.Value != "" && c.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected http-only visitor cookie")
	}
}

func TestRevealRecordsOnce(t *testing.T) {
	stats := &statsStub{}
	r, api, htmlRender := newPublicEngine(stats)
	m := api.Mounts().Create(testLibrary(), "visitor-2")
	target := "/v/" + m.ID + "/sections/references/reveal/grace-hopper"

	rr := postForm(r, target, url.Values{"ratio": {"0.9"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	rendered := htmlRender.last(t)
	card := rendered.data.(gin.H)["card"].(service.CardView)
	if rendered.name != "card.html" || !card.Revealed || card.Key != "grace-hopper" {
		t.Fatalf("unexpected card render %s %+v", rendered.name, card)
	}

	rr = postForm(r, target, url.Values{"ratio": {"0.9"}})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for repeated crossing, got %d", rr.Code)
	}
	if len(stats.reveals) != 1 || stats.reveals[0] != "visitor-2|references/grace-hopper" {
		t.Fatalf("expected one recorded reveal, got %v", stats.reveals)
	}

	rr = postForm(r, "/v/"+m.ID+"/sections/references/reveal/edsger-dijkstra", url.Values{"ratio": {"1"}})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("off-page card should not reveal, got %d", rr.Code)
	}
}

func TestUpdateViewportRendersOnModeChange(t *testing.T) {
	r, api, htmlRender := newPublicEngine(nil)
	m := api.Mounts().Create(testLibrary(), "visitor")
	target := "/v/" + m.ID + "/viewport"

	if rr := postForm(r, target, url.Values{"width": {"1024"}, "observer": {"true"}}); rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 without mode change, got %d", rr.Code)
	}

	rr := postForm(r, target, url.Values{"width": {"360"}, "observer": {"true"}})
	if rr.Code != http.StatusOK || htmlRender.last(t).name != "sections_oob.html" {
		t.Fatalf("expected out-of-band render, got %d", rr.Code)
	}
	if !m.Compact() {
		t.Fatalf("expected compact mount")
	}

	rr = postForm(r, target, url.Values{"width": {"360"}, "observer": {"false"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("missing observer support should re-render revealed sections, got %d", rr.Code)
	}
	sections := htmlRender.last(t).data.(gin.H)["sections"].([]service.SectionView)
	for _, card := range sections[0].Cards {
		if !card.Revealed {
			t.Fatalf("expected every card revealed without observer support")
		}
	}
}

func TestTeardownAndGone(t *testing.T) {
	r, api, _ := newPublicEngine(nil)
	m := api.Mounts().Create(testLibrary(), "visitor")

	if rr := postForm(r, "/v/"+m.ID+"/teardown", nil); rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if !m.Closed() {
		t.Fatalf("expected mount closed")
	}

	rr := postForm(r, "/v/"+m.ID+"/sections/references/tab/references", nil)
	if rr.Code != http.StatusGone || rr.Header().Get("HX-Refresh") != "true" {
		t.Fatalf("expected 410 with refresh, got %d", rr.Code)
	}
}

func TestServeMediaUsesViewContent(t *testing.T) {
	r, api, _ := newPublicEngine(nil)
	r.GET("/media/:section/:key", api.ServeMedia)

	older := content.NewLibrary(content.Data{
		Projects: []content.Project{{Title: "Old Map", Image: "/assets/old.jpg"}},
		Media:    content.MediaConfig{Placeholder: "/assets/placeholder.jpeg"},
	})
	m := api.Mounts().Create(older, "visitor")

	cases := []struct {
		target   string
		status   int
		location string
	}{
		{"/media/portfolio/old-map?view=" + m.ID, http.StatusFound, "/assets/old.jpg"},
		{"/media/portfolio/old-map?view=" + m.ID + "&failed=1", http.StatusFound, "/assets/placeholder.jpeg"},
		{"/media/portfolio/old-map", http.StatusNotFound, ""},
		{"/media/portfolio/old-map?view=unknown", http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.target, nil))
		if rr.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.target, tc.status, rr.Code)
		}
		if tc.location != "" && rr.Header().Get("Location") != tc.location {
			t.Fatalf("%s: unexpected location %q", tc.target, rr.Header().Get("Location"))
		}
	}
}

func TestParseHelpers(t *testing.T) {
	ratios := map[string]float64{"": 1, "abc": 1, "0.25": 0.25, "-1": 1, "1.5": 1, " 0 ": 0, "NaN": 1, "nan": 1, "-Inf": 1}
	for in, want := range ratios {
		if got := parseRatio(in); got != want {
			t.Fatalf("parseRatio(%q) = %v, want %v", in, got, want)
		}
	}
	if parseNonNegativeInt("-3") != 0 || parseNonNegativeInt("4") != 4 {
		t.Fatalf("unexpected parseNonNegativeInt")
	}
	if parsePositiveInt("0", 10) != 10 || parsePositiveInt("7", 10) != 7 {
		t.Fatalf("unexpected parsePositiveInt")
	}
	if !parseBool("", true) || parseBool("0", true) {
		t.Fatalf("unexpected parseBool")
	}
}
