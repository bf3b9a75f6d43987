package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/quickjuice/backend/internal/metrics"
	"github.com/quickjuice/backend/internal/service/models/dashboard"
	"github.com/quickjuice/backend/internal/service/models/juice"
	"github.com/quickjuice/backend/internal/service/models/order"
	cancelorder "github.com/quickjuice/backend/internal/transport/http/cancel_order"
	createjuice "github.com/quickjuice/backend/internal/transport/http/create_juice"
	dashboardhandler "github.com/quickjuice/backend/internal/transport/http/dashboard"
	deletejuice "github.com/quickjuice/backend/internal/transport/http/delete_juice"
	getjuice "github.com/quickjuice/backend/internal/transport/http/get_juice"
	getorder "github.com/quickjuice/backend/internal/transport/http/get_order"
	listjuices "github.com/quickjuice/backend/internal/transport/http/list_juices"
	listorders "github.com/quickjuice/backend/internal/transport/http/list_orders"
	placeorder "github.com/quickjuice/backend/internal/transport/http/place_order"
	setstatus "github.com/quickjuice/backend/internal/transport/http/set_status"
	updatejuice "github.com/quickjuice/backend/internal/transport/http/update_juice"
	"github.com/quickjuice/backend/pkg/http/middleware/trace"
	"github.com/quickjuice/backend/pkg/logger"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type orderService interface {
	PlaceOrder(ctx context.Context, o order.Order) (*order.Order, error)
	GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
	GetOrder(ctx context.Context, id int64) (*order.Order, error)
	SetStatus(ctx context.Context, id int64, status string) (*order.Order, error)
	CancelOrder(ctx context.Context, id int64) error
}

type catalogService interface {
	ListJuices(ctx context.Context, filter juice.QueryJuicesModel) ([]juice.Juice, error)
	GetJuice(ctx context.Context, id int64) (*juice.Juice, error)
	CreateJuice(ctx context.Context, j juice.Juice) (*juice.Juice, error)
	UpdateJuice(ctx context.Context, j juice.Juice) (*juice.Juice, error)
	DeleteJuice(ctx context.Context, id int64) error
	Dashboard(ctx context.Context) (*dashboard.Dashboard, error)
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	orders  orderService
	catalog catalogService
	metrics *metrics.Metrics
}

func NewHTTPTransport(orders orderService, catalog catalogService, m *metrics.Metrics) *HTTPTransport {
	router := newRouter(m)
	server := newServer(router)

	return &HTTPTransport{
		server:  server,
		router:  router,
		orders:  orders,
		catalog: catalog,
		metrics: m,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Route("/juices", func(r chi.Router) {
			r.Get("/", h.listJuices)
			r.Post("/", h.createJuice)
			r.Get("/{id}", h.getJuice)
			r.Put("/{id}", h.updateJuice)
			r.Delete("/{id}", h.deleteJuice)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.listOrders)
			r.Post("/", h.placeOrder)
			r.Get("/{id}", h.getOrder)
			r.Put("/{id}/status", h.setStatus)
			r.Delete("/{id}", h.cancelOrder)
		})

		r.Get("/admin/dashboard", h.dashboard)
	})

	h.router.Handle("/metrics", h.metrics.Handler())
	h.router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, viper.GetString("server.http.swagger_doc_path"))
	})
	h.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}

func (h *HTTPTransport) placeOrder(w http.ResponseWriter, r *http.Request) {
	placeorder.PlaceOrder(w, r, h.orders)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orders)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orders)
}

func (h *HTTPTransport) setStatus(w http.ResponseWriter, r *http.Request) {
	setstatus.SetStatus(w, r, h.orders)
}

func (h *HTTPTransport) cancelOrder(w http.ResponseWriter, r *http.Request) {
	cancelorder.CancelOrder(w, r, h.orders)
}

func (h *HTTPTransport) listJuices(w http.ResponseWriter, r *http.Request) {
	listjuices.ListJuices(w, r, h.catalog)
}

func (h *HTTPTransport) getJuice(w http.ResponseWriter, r *http.Request) {
	getjuice.GetJuice(w, r, h.catalog)
}

func (h *HTTPTransport) createJuice(w http.ResponseWriter, r *http.Request) {
	createjuice.CreateJuice(w, r, h.catalog)
}

func (h *HTTPTransport) updateJuice(w http.ResponseWriter, r *http.Request) {
	updatejuice.UpdateJuice(w, r, h.catalog)
}

func (h *HTTPTransport) deleteJuice(w http.ResponseWriter, r *http.Request) {
	deletejuice.DeleteJuice(w, r, h.catalog)
}

func (h *HTTPTransport) dashboard(w http.ResponseWriter, r *http.Request) {
	dashboardhandler.Dashboard(w, r, h.catalog)
}

func newRouter(m *metrics.Metrics) *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)
	router.Use(m.Middleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
