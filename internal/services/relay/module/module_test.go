package module

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"einwurf/internal/modkit"
	"einwurf/internal/modkit/httpkit"
	kitmodule "einwurf/internal/modkit/module"
	phttp "einwurf/internal/platform/net/http"
	kit "einwurf/internal/platform/testkit"
	"einwurf/internal/services/relay/domain"
	"einwurf/internal/services/relay/sink"
)

func config(up *kit.Upstream, dest domain.Destination) domain.Config {
	return domain.Config{
		Destination: dest,
		Mattermost:  domain.WebhookConfig{URL: up.URL + "/mm"},
		Slack:       domain.WebhookConfig{URL: up.URL + "/slack"},
		Notion:      domain.NotionConfig{BearerToken: "tok", PageID: "pg", BlockType: domain.BlockBulletedListItem},
	}
}

func mount(t *testing.T, m *Module, root ...func(http.Handler) http.Handler) http.Handler {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	if len(root) > 0 {
		r.Use(root...)
	}
	m.MountRoutes(r)
	return r.Mux()
}

func submit(h http.Handler, content string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(url.Values{"content": {content}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestModule_Defaults(t *testing.T) {
	up := kit.NewUpstream(t, http.StatusOK)
	m := New(modkit.Deps{}, config(up, domain.DestinationSlack))

	if m.Name() != "relay" || m.Prefix() != "/" {
		t.Fatalf("name/prefix = %q/%q", m.Name(), m.Prefix())
	}
	d := kitmodule.MustPortsOf[domain.DispatcherPort](m)
	if d.Destination() != domain.DestinationSlack {
		t.Fatalf("dispatcher destination = %q", d.Destination())
	}
}

func TestModule_ServesFormThroughCommonStack(t *testing.T) {
	up := kit.NewUpstream(t, http.StatusOK)
	m := newModule(
		modkit.Deps{Client: up.Client()},
		config(up, domain.DestinationNotion),
		[]sink.Option{sink.WithNotionBaseURL(up.URL)},
	)
	h := mount(t, m, httpkit.CommonStack(httpkit.StackOptions{})...)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d", rec.Code)
	}
	kit.MustContain(t, rec.Body.String(), `name="content"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", rec.Code)
	}

	rec = submit(h, " item ")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("POST /form = %d, request id %q", rec.Code, rec.Header().Get("X-Request-ID"))
	}
	got := up.Only(t)
	if got.Method != http.MethodPatch || got.Path != "/blocks/pg/children" {
		t.Fatalf("upstream = %s %s", got.Method, got.Path)
	}
	kit.MustContain(t, string(got.Body), `"type":"bulleted_list_item"`)
	kit.MustContain(t, string(got.Body), `"content":"item"`)
}

type stubDispatcher struct{ texts []string }

func (s *stubDispatcher) Dispatch(_ context.Context, text string) error {
	s.texts = append(s.texts, text)
	return nil
}

func (s *stubDispatcher) Destination() domain.Destination { return domain.DestinationMattermost }

func TestModule_PortsOverrideAndExtraRoutes(t *testing.T) {
	up := kit.NewUpstream(t, http.StatusOK)
	stub := &stubDispatcher{}
	m := New(modkit.Deps{}, config(up, domain.DestinationSlack),
		modkit.WithPorts(Ports{Dispatcher: stub}),
		modkit.WithRegister(func(r phttp.Router) {
			r.Get("/extra", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
		}),
	)
	h := mount(t, m)

	if rec := submit(h, "hi"); rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /form = %d", rec.Code)
	}
	if len(stub.texts) != 1 || stub.texts[0] != "hi" {
		t.Fatalf("stub saw %q", stub.texts)
	}
	if n := len(up.Requests()); n != 0 {
		t.Fatalf("real sink was called %d times", n)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/extra", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("GET /extra = %d", rec.Code)
	}
}
