// Package http provides the browser-facing form endpoints
package http

import (
	_ "embed"
	"net/http"
	"strings"

	perr "einwurf/internal/platform/errors"
	"einwurf/internal/platform/logger"
	pnet "einwurf/internal/platform/net"
	phttp "einwurf/internal/platform/net/http"
	"einwurf/internal/platform/net/http/bind"
	"einwurf/internal/platform/net/middleware"
	"einwurf/internal/services/relay/domain"
)

//go:embed assets/form.html
var formPage []byte

// FormPath is where the form posts
const FormPath = "/form"

// Deps are the handler dependencies
type Deps struct {
	Dispatcher domain.DispatcherPort
	Log        *logger.Logger // defaults to logger.Named("relay")
}

type handlers struct {
	deps Deps
}

// submission is the form payload; the field must be present but may be empty or blank
type submission struct {
	Content *string `form:"content" validate:"required"`
}

// Register mounts the form routes
func Register(r phttp.Router, d Deps) {
	if d.Log == nil {
		d.Log = logger.Named("relay")
	}
	h := &handlers{deps: d}

	r.Get("/", h.index)
	r.Post(FormPath, h.submit)
}

// FormPage returns the embedded form markup
func FormPage() []byte { return formPage }

func (h *handlers) index(w http.ResponseWriter, _ *http.Request) {
	phttp.HTML(w, http.StatusOK, formPage)
}

// submit relays the trimmed content and always returns the browser to the form
func (h *handlers) submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.deps.Log.With().Str("request_id", pnet.RequestID(ctx)).Logger()

	in, err := bind.ParseForm[submission](r)
	if err != nil {
		ev := log.Warn().Err(err).Str("code", perr.CodeOf(err).String())
		if e, ok := perr.As(err); ok && e.Field() != "" {
			ev = ev.Str("field", e.Field())
		}
		ev.Msg("form rejected")
		middleware.Annotate(ctx, "outcome", "rejected")
		phttp.SeeOther(w, r, "/")
		return
	}

	dest := string(h.deps.Dispatcher.Destination())
	middleware.Annotate(ctx, "destination", dest)

	text := strings.TrimSpace(*in.Content)
	if err := h.deps.Dispatcher.Dispatch(ctx, text); err != nil {
		ev := log.Error().
			Err(err).
			Str("destination", dest).
			Str("code", perr.CodeOf(err).String())
		if e, ok := perr.As(err); ok && e.Op() != "" {
			ev = ev.Str("op", e.Op())
		}
		ev.Msg("delivery failed")
		middleware.Annotate(ctx, "outcome", "failed")
	} else {
		middleware.Annotate(ctx, "outcome", "delivered")
		log.Debug().
			Str("destination", dest).
			Int("chars", len([]rune(text))).
			Msg("submission relayed")
	}
	phttp.SeeOther(w, r, "/")
}
