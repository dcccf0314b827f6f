package viewer

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/nanoncore/ont-cleaner/web"
)

// Handler serves the listing page and the health check
type Handler struct {
	service *Service
	tmpl    *template.Template
	log     logrus.FieldLogger
}

// NewHandler parses the embedded index template
func NewHandler(service *Service, log logrus.FieldLogger) (*Handler, error) {
	tmpl, err := template.ParseFS(web.TemplateFS(), "templates/index.html")
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{service: service, tmpl: tmpl, log: log}, nil
}

// Router returns the routes of the viewer
func (h *Handler) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(false)
	router.HandleFunc("/", h.HandleIndex).Methods("GET")
	router.HandleFunc("/healthz", h.HandleHealth).Methods("GET")
	return router
}

// HandleIndex renders one page of records
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := ParsePage(query.Get("page"))

	listing, err := h.service.ListPage(r.Context(), page, query.Get("timezone"))
	if err != nil {
		h.log.WithError(err).Error("Failed to list deletion records")
		http.Error(w, "Error al consultar los registros", http.StatusInternalServerError)
		return
	}

	// render fully before writing so a template error still yields a 500
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, listing); err != nil {
		h.log.WithError(err).Error("Failed to render index")
		http.Error(w, "Error al generar la página", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// HandleHealth answers ok once the store responds
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ping(r.Context()); err != nil {
		h.log.WithError(err).Warn("Health check failed")
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// ParsePage reads the page query value. Missing, non-numeric and values
// below 1 all mean page 1; values above MaxPage read as MaxPage.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		return MaxPage
	}
	if err != nil {
		return 1
	}
	return clampPage(n)
}
