// Package web exposes the report engine over HTTP.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zeptools/informes/activity"
	"github.com/zeptools/informes/informe"
	"github.com/zeptools/informes/reports"
	"github.com/zeptools/informes/requests"
	"github.com/zeptools/informes/responses"
	"github.com/zeptools/informes/routing"
	"github.com/zeptools/informes/sec"
	"github.com/zeptools/informes/throttle"
)

const (
	ThrottleReports = "reports"
	ThrottleLogin   = "login"

	msgRenderFailed = "Error al generar el informe"
	msgServerError  = "Error en el servidor"
)

// Deps is everything the handlers need. Activity and Throttle are optional.
type Deps struct {
	Reports      *reports.Registry
	Renderer     *reports.Renderer
	Issuer       *sec.Issuer
	PINs         sec.PINs
	Activity     activity.Log
	Throttle     *throttle.BucketStore[string]
	MaxBodyBytes int64
	Location     *time.Location
}

type handlers struct {
	*Deps
}

// NewRouter registers every API route:
//
//	POST /api/auth/login
//	POST|GET /api/<report route>      one pair per report kind
//	GET  /api/informes/actividades
//	GET  /healthz
func NewRouter(d *Deps) *routing.BaseRouter {
	h := &handlers{Deps: d}
	router := routing.NewBaseRouter()
	router.HandleFunc("GET /healthz", h.health)

	var reportLimit, loginLimit []routing.HandlerWrapper
	if d.Throttle != nil {
		reportLimit = append(reportLimit, &throttle.Wrapper{Store: d.Throttle, Group: ThrottleReports})
		loginLimit = append(loginLimit, &throttle.Wrapper{Store: d.Throttle, Group: ThrottleLogin})
	}

	router.Group("/api/", func(api *routing.RouteGroup) {
		api.HandleFunc("POST auth/login", h.login, loginLimit...)

		for _, kind := range d.Reports.Keys() {
			rep, _ := d.Reports.Get(kind)
			meta := rep.Describe()
			auth := &sec.AuthWrapper{Issuer: d.Issuer, Modules: []string{meta.Module}}
			wrappers := append([]routing.HandlerWrapper{auth}, reportLimit...)
			api.Handle("POST "+meta.Route, h.report(rep), wrappers...)
			api.Handle("GET "+meta.Route, h.report(rep), wrappers...)
		}

		api.HandleFunc("GET informes/actividades", h.activities, &sec.AuthWrapper{Issuer: d.Issuer})
	}, routing.AccessLog, routing.Recover)
	return router
}

func (h *handlers) now() time.Time {
	now := h.Renderer.Now()
	if h.Location != nil {
		now = now.In(h.Location)
	}
	return now
}

func (h *handlers) maxBody() int64 {
	if h.MaxBodyBytes <= 0 {
		return 8 << 20
	}
	return h.MaxBodyBytes
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	responses.EncodeWriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "reports": h.Reports.Keys()})
}

func (h *handlers) report(rep reports.Report) http.Handler {
	meta := rep.Describe()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := ""
		if claims, ok := sec.ClaimsFromContext(ctx); ok {
			user = claims.Name
		}

		var (
			doc *informe.Document
			err error
		)
		if r.Method == http.MethodGet {
			doc, err = rep.RenderSource(ctx, h.Renderer, strings.TrimSpace(r.URL.Query().Get("filtro")), user)
		} else {
			var body []byte
			if body, err = requests.ReadBody(r, h.maxBody()); err != nil {
				if errors.Is(err, requests.ErrBodyTooLarge) {
					responses.WriteErrorJSON(w, http.StatusRequestEntityTooLarge, err.Error())
					return
				}
				log.Printf("[ERROR][web] %s: %v", meta.Kind, err)
				responses.WriteErrorJSON(w, http.StatusInternalServerError, msgRenderFailed)
				return
			}
			doc, err = rep.RenderJSON(ctx, h.Renderer, body, user)
		}
		if err != nil {
			h.renderFailed(w, meta, err)
			return
		}

		now := h.now()
		n, err := responses.WritePDF(w, reports.Filename(meta.Kind, now), doc)
		if err != nil {
			log.Printf("[ERROR][web] %s: stream aborted after %d bytes: %v", meta.Kind, n, err)
			return
		}
		layout := doc.Layout()
		log.Printf("[INFO][web] %s: %d cards, %d pages, %d bytes", meta.Kind, len(layout.Cards), layout.Pages, n)

		if user == "" {
			user = h.Renderer.Style.DefaultUser
		}
		actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		activity.Note(actx, h.Activity, activity.NewEntry(now, meta.Module, activity.TipoGeneracionInforme, user,
			"Generó "+strings.ToLower(meta.Title),
			fmt.Sprintf("%d registros, %d páginas", len(layout.Cards), layout.Pages)))
	})
}

func (h *handlers) renderFailed(w http.ResponseWriter, meta reports.Meta, err error) {
	var streamErr *informe.StreamError
	switch {
	case errors.Is(err, reports.ErrTooManyRecords):
		responses.WriteErrorJSON(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, reports.ErrNoSource):
		responses.WriteErrorJSON(w, http.StatusNotImplemented, "no hay origen de datos configurado para este informe")
	case errors.As(err, &streamErr):
		// client gone or shutting down; nothing left to answer
		log.Printf("[WARN][web] %s: render aborted: %v", meta.Kind, err)
	default:
		log.Printf("[ERROR][web] %s: %v", meta.Kind, err)
		responses.WriteErrorJSON(w, http.StatusInternalServerError, msgRenderFailed)
	}
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req sec.LoginRequestBody
	body, err := requests.ReadBody(r, 4<<10)
	if err == nil {
		err = json.Unmarshal(body, &req)
	}
	if err != nil || req.Module == "" || req.PIN == "" {
		responses.WriteErrorJSON(w, http.StatusBadRequest, "se requieren módulo y PIN")
		return
	}
	module := strings.ToUpper(req.Module)
	if err = h.PINs.Check(module, req.PIN); err != nil {
		log.Printf("[WARN][web] login to %q refused from %s", module, requests.GetClientIP(r))
		responses.WriteErrorJSON(w, http.StatusUnauthorized, err.Error())
		return
	}
	token, exp, err := h.Issuer.Issue(module, req.UserName)
	if err != nil {
		log.Printf("[ERROR][web] issue token: %v", err)
		responses.WriteErrorJSON(w, http.StatusInternalServerError, msgServerError)
		return
	}

	user := req.UserName
	if user == "" {
		user = h.Renderer.Style.DefaultUser
	}
	activity.Note(r.Context(), h.Activity, activity.NewEntry(h.now(), module, activity.TipoInicioSesion, user, "Inicio de sesión", ""))

	responses.EncodeWriteJSON(w, http.StatusOK, sec.LoginResponseBody{
		Success:   true,
		Module:    module,
		Token:     token,
		ExpiresAt: exp.Unix(),
	})
}

func (h *handlers) activities(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			responses.WriteErrorJSON(w, http.StatusBadRequest, "limit inválido")
			return
		}
		limit = min(n, 500)
	}
	entries := []activity.Entry{}
	if h.Activity != nil {
		var err error
		if entries, err = h.Activity.Recent(r.Context(), limit); err != nil {
			log.Printf("[ERROR][web] activities: %v", err)
			responses.WriteErrorJSON(w, http.StatusInternalServerError, msgServerError)
			return
		}
	}
	responses.EncodeWriteJSON(w, http.StatusOK, entries)
}
