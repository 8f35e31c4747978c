package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/autoworks/workshop-backend/api/controllers"
	"github.com/autoworks/workshop-backend/api/middleware"
	"github.com/autoworks/workshop-backend/internal/inventory"
	"github.com/autoworks/workshop-backend/internal/jobcards"
	"github.com/autoworks/workshop-backend/internal/repo"
	"github.com/autoworks/workshop-backend/internal/services"
	"github.com/autoworks/workshop-backend/pkg/config"
	"github.com/autoworks/workshop-backend/pkg/db"
	"github.com/autoworks/workshop-backend/pkg/db/models"
	"github.com/autoworks/workshop-backend/pkg/logger"
	"github.com/autoworks/workshop-backend/pkg/metrics"
)

// NewRouter wires every repository behind the REST surface. reg may be nil,
// which disables the /metrics endpoint.
func NewRouter(cfg *config.Config, logg *logger.Logger, conn *gorm.DB, dbP db.Pinger, reg *prometheus.Registry) http.Handler {
	customers := repo.NewRepository[models.Customer](conn)
	vehicles := repo.NewRepository[models.Vehicle](conn)
	suppliers := repo.NewRepository[models.Supplier](conn)
	payments := repo.NewRepository[models.Payment](conn)
	complaints := repo.NewRepository[models.Complaint](conn)
	feedbacks := repo.NewRepository[models.Feedback](conn)
	estimates := repo.NewRepository[models.Estimate](conn)
	employees := repo.NewRepository[models.Employee](conn)

	inventoryRepo := inventory.NewRepository(conn)
	servicesRepo := services.NewRepository(conn)
	jobCardsRepo := jobcards.NewRepository(conn)

	var httpMetrics *metrics.HTTPMetrics
	if reg != nil {
		httpMetrics = metrics.NewHTTPMetrics(reg)
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
	)

	r.Get("/healthz", controllers.HealthLive(cfg))
	r.Get("/healthz/ready", controllers.HealthReady(cfg, logg, dbP))

	if reg != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListResource(customers, logg))
			r.Post("/", controllers.CustomerCreate(customers, logg))
			r.Get("/{id}", controllers.GetResource(customers, logg))
			r.Patch("/{id}", controllers.CustomerUpdate(customers, logg))
			r.Delete("/{id}", controllers.DeleteResource(customers, logg))
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", controllers.ListResource(vehicles, logg))
			r.Post("/", controllers.VehicleCreate(vehicles, customers, logg))
			r.Get("/{id}", controllers.GetResource(vehicles, logg))
			r.Patch("/{id}", controllers.VehicleUpdate(vehicles, logg))
			r.Delete("/{id}", controllers.DeleteResource(vehicles, logg))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", controllers.ListResource(suppliers, logg))
			r.Post("/", controllers.SupplierCreate(suppliers, logg))
			r.Get("/{id}", controllers.GetResource(suppliers, logg))
			r.Patch("/{id}", controllers.SupplierUpdate(suppliers, logg))
			r.Delete("/{id}", controllers.DeleteResource(suppliers, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.ListResource(inventoryRepo.Repository, logg))
			r.Post("/", controllers.InventoryCreate(inventoryRepo, logg))
			r.Get("/{id}", controllers.GetResource(inventoryRepo.Repository, logg))
			r.Patch("/{id}", controllers.InventoryUpdate(inventoryRepo, logg))
			r.Delete("/{id}", controllers.InventoryDelete(inventoryRepo, logg))
			r.Post("/{id}/swap-supplier", controllers.InventorySwapSupplier(inventoryRepo, logg))
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", controllers.ListResource(servicesRepo.Repository, logg))
			r.Post("/", controllers.ServiceCreate(servicesRepo, logg))
			r.Get("/{id}", controllers.GetResource(servicesRepo.Repository, logg))
			r.Patch("/{id}", controllers.ServiceUpdate(servicesRepo, logg))
			r.Delete("/{id}", controllers.ServiceDelete(servicesRepo, logg))
		})

		r.Route("/jobcards", func(r chi.Router) {
			r.Get("/", controllers.ListResource(jobCardsRepo.Repository, logg))
			r.Post("/", controllers.JobCardCreate(jobCardsRepo, logg))
			r.Get("/{id}", controllers.GetResource(jobCardsRepo.Repository, logg))
			r.Patch("/{id}", controllers.JobCardUpdate(jobCardsRepo, logg))
			r.Delete("/{id}", controllers.JobCardDelete(jobCardsRepo, logg))
			r.Post("/{id}/swap-inventory", controllers.JobCardSwapInventory(jobCardsRepo, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", controllers.ListResource(payments, logg))
			r.Post("/", controllers.PaymentCreate(payments, logg))
			r.Get("/{id}", controllers.GetResource(payments, logg))
			r.Patch("/{id}", controllers.PaymentUpdate(payments, logg))
			r.Delete("/{id}", controllers.DeleteResource(payments, logg))
		})

		r.Route("/complaints", func(r chi.Router) {
			r.Get("/", controllers.ListResource(complaints, logg))
			r.Post("/", controllers.ComplaintCreate(complaints, logg))
			r.Get("/{id}", controllers.GetResource(complaints, logg))
			r.Patch("/{id}", controllers.ComplaintUpdate(complaints, logg))
			r.Delete("/{id}", controllers.DeleteResource(complaints, logg))
		})

		r.Route("/feedback", func(r chi.Router) {
			r.Get("/", controllers.ListResource(feedbacks, logg))
			r.Post("/", controllers.FeedbackCreate(feedbacks, logg))
			r.Get("/{id}", controllers.GetResource(feedbacks, logg))
			r.Patch("/{id}", controllers.FeedbackUpdate(feedbacks, logg))
			r.Delete("/{id}", controllers.DeleteResource(feedbacks, logg))
		})

		r.Route("/estimates", func(r chi.Router) {
			r.Get("/", controllers.ListResource(estimates, logg))
			r.Post("/", controllers.EstimateCreate(estimates, logg))
			r.Get("/{id}", controllers.GetResource(estimates, logg))
			r.Patch("/{id}", controllers.EstimateUpdate(estimates, logg))
			r.Delete("/{id}", controllers.DeleteResource(estimates, logg))
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", controllers.ListResource(employees, logg))
			r.Post("/", controllers.EmployeeCreate(employees, cfg.Password, logg))
			r.Get("/{id}", controllers.GetResource(employees, logg))
			r.Patch("/{id}", controllers.EmployeeUpdate(employees, cfg.Password, logg))
			r.Delete("/{id}", controllers.DeleteResource(employees, logg))
		})
	})

	return r
}
