package http

import (
	"net/http"
	"net/http/pprof"

	"github.com/go-chi/chi"
)

const pprofPath = "/debug/pprof"

func (s *HttpManagerCtx) withPProf() {
	s.router.Route(pprofPath, func(r chi.Router) {
		r.Get("/", pprof.Index)
		r.Get("/cmdline", pprof.Cmdline)
		r.Get("/profile", pprof.Profile)
		r.Get("/symbol", pprof.Symbol)
		r.Get("/trace", pprof.Trace)

		r.Get("/{action}", func(w http.ResponseWriter, r *http.Request) {
			action := chi.URLParam(r, "action")
			pprof.Handler(action).ServeHTTP(w, r)
		})
	})
}
