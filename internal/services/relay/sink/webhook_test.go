package sink

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	perr "einwurf/internal/platform/errors"
	kit "einwurf/internal/platform/testkit"
	"einwurf/internal/services/relay/domain"
)

func TestWebhookBody_Exact(t *testing.T) {
	cases := map[string]string{
		"hello":                 `{"text":"hello"}`,
		"":                      `{"text":""}`,
		`say "hi" \ now`:        `{"text":"say \"hi\" \\ now"}`,
		"<b>Tom & Jerry</b>":    `{"text":"<b>Tom & Jerry</b>"}`,
		"Grüße aus Köln 🎉":      `{"text":"Grüße aus Köln 🎉"}`,
		"line one\nline\ttwo": `{"text":"line one\nline\ttwo"}`,
	}
	for in, want := range cases {
		got, err := WebhookBody(in)
		if err != nil {
			t.Fatalf("WebhookBody(%q): %v", in, err)
		}
		if string(got) != want {
			t.Fatalf("WebhookBody(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestWebhook_DeliverPostsJSON(t *testing.T) {
	for _, dest := range []domain.Destination{domain.DestinationMattermost, domain.DestinationSlack} {
		t.Run(string(dest), func(t *testing.T) {
			up := kit.NewUpstream(t, http.StatusOK)
			w := NewWebhook(dest, domain.WebhookConfig{URL: up.URL + "/hooks/abc123"})
			if w.Destination() != dest {
				t.Fatalf("Destination() = %q", w.Destination())
			}

			if err := w.Deliver(context.Background(), `quote " and ünïcode`); err != nil {
				t.Fatalf("Deliver: %v", err)
			}

			got := up.Only(t)
			if got.Method != http.MethodPost || got.Path != "/hooks/abc123" {
				t.Fatalf("request = %s %s", got.Method, got.Path)
			}
			if ct := got.Header.Get("Content-Type"); ct != "application/json" {
				t.Fatalf("content type = %q", ct)
			}
			if got.Header.Get("Authorization") != "" {
				t.Fatalf("webhook must not send Authorization")
			}
			if string(got.Body) != `{"text":"quote \" and ünïcode"}` {
				t.Fatalf("body = %s", got.Body)
			}
		})
	}
}

func TestWebhook_NonSuccessIsDeliveryError(t *testing.T) {
	for _, status := range []int{
		http.StatusBadRequest, http.StatusForbidden, http.StatusInternalServerError,
		http.StatusMultipleChoices, http.StatusFound, http.StatusTemporaryRedirect,
	} {
		up := kit.NewUpstream(t, status)
		w := NewWebhook(domain.DestinationSlack, domain.WebhookConfig{URL: up.URL})
		err := w.Deliver(context.Background(), "x")
		if !perr.IsCode(err, perr.ErrorCodeDelivery) {
			t.Fatalf("status %d: expected delivery error, got %v", status, err)
		}
		if e, _ := perr.As(err); e.Op() != "slack.deliver" {
			t.Fatalf("op = %q", e.Op())
		}
	}
}

func TestWebhook_RedirectIsNotFollowed(t *testing.T) {
	for _, status := range []int{
		http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect,
	} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var mu sync.Mutex
			var seen []string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				mu.Lock()
				seen = append(seen, r.Method+" "+r.URL.Path)
				mu.Unlock()
				if r.URL.Path == "/hook" {
					http.Redirect(w, r, "/moved", status)
					return
				}
				w.WriteHeader(http.StatusOK)
			}))
			t.Cleanup(srv.Close)

			// a caller-supplied client that would follow redirects is overridden too
			w := NewWebhook(domain.DestinationSlack, domain.WebhookConfig{URL: srv.URL + "/hook"}, WithHTTPClient(srv.Client()))
			err := w.Deliver(context.Background(), "x")
			if !perr.IsCode(err, perr.ErrorCodeDelivery) {
				t.Fatalf("expected delivery error, got %v", err)
			}
			mu.Lock()
			defer mu.Unlock()
			if len(seen) != 1 || seen[0] != "POST /hook" {
				t.Fatalf("requests = %v, want only POST /hook", seen)
			}
		})
	}
}

func TestWithHTTPClient_DoesNotMutateCallerClient(t *testing.T) {
	c := &http.Client{}
	_ = NewWebhook(domain.DestinationSlack, domain.WebhookConfig{URL: "http://127.0.0.1:1"}, WithHTTPClient(c))
	if c.CheckRedirect != nil {
		t.Fatalf("caller client was modified")
	}
}

func TestWebhook_TransportErrorHidesURL(t *testing.T) {
	up := kit.NewUpstream(t, http.StatusOK)
	target := up.URL + "/hooks/supersecret"
	up.Close()

	w := NewWebhook(domain.DestinationMattermost, domain.WebhookConfig{URL: target})
	err := w.Deliver(context.Background(), "x")
	if !perr.IsCode(err, perr.ErrorCodeDelivery) {
		t.Fatalf("expected delivery error, got %v", err)
	}
	if strings.Contains(err.Error(), "supersecret") {
		t.Fatalf("error leaks webhook url: %v", err)
	}
}

func TestWebhook_InvalidURL(t *testing.T) {
	w := NewWebhook(domain.DestinationSlack, domain.WebhookConfig{URL: "://nope"})
	if err := w.Deliver(context.Background(), "x"); !perr.IsCode(err, perr.ErrorCodeDelivery) {
		t.Fatalf("expected delivery error, got %v", err)
	}
}

func TestWebhook_CancelledContext(t *testing.T) {
	up := kit.NewUpstream(t, http.StatusOK)
	w := NewWebhook(domain.DestinationSlack, domain.WebhookConfig{URL: up.URL}, WithHTTPClient(up.Client()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Deliver(ctx, "x"); !perr.IsCode(err, perr.ErrorCodeDelivery) {
		t.Fatalf("expected delivery error, got %v", err)
	}
	if n := len(up.Requests()); n != 0 {
		t.Fatalf("cancelled delivery reached upstream %d times", n)
	}
}
