package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hairsol/booking-engine/internal/audit"
	domainAppointment "github.com/hairsol/booking-engine/internal/domain/appointment"
	domainAvailability "github.com/hairsol/booking-engine/internal/domain/availability"
	"github.com/hairsol/booking-engine/internal/domain/catalog"
	"github.com/hairsol/booking-engine/internal/handlers"
	"github.com/hairsol/booking-engine/internal/middleware"
	"github.com/hairsol/booking-engine/internal/timezone"
	ucAppointment "github.com/hairsol/booking-engine/internal/usecase/appointment"
	ucAvailability "github.com/hairsol/booking-engine/internal/usecase/availability"
)

// Deps are the storage ports and singletons the routes are built on. Both the
// gorm and the in-memory backends satisfy them.
type Deps struct {
	Catalog      catalog.Repository
	Availability domainAvailability.Repository
	Appointments domainAppointment.Repository
	AuditStore   audit.Store
	Audit        *audit.Dispatcher
	Clock        timezone.Clock
	Logger       *zap.Logger

	JWTSecret    string
	CORSOrigins  []string
	HealthChecks map[string]handlers.Pinger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Logger),
		middleware.AccessLog(d.Logger),
		middleware.CORSMiddleware(d.CORSOrigins),
	)

	// ======================================================
	// USE CASES - AVAILABILITY
	// ======================================================
	declareUC := ucAvailability.NewDeclareAvailability(d.Catalog, d.Availability, d.Audit, d.Clock)
	updateUC := ucAvailability.NewUpdateAvailability(d.Catalog, d.Availability, d.Audit, d.Clock)
	removeUC := ucAvailability.NewRemoveAvailability(d.Catalog, d.Availability, d.Audit)
	availabilityQueries := ucAvailability.NewAvailabilityQueries(d.Catalog, d.Availability)

	// ======================================================
	// USE CASES - APPOINTMENTS
	// ======================================================
	refresher := ucAppointment.NewRefresher(d.Appointments, d.Clock, d.Logger)

	bookUC := ucAppointment.NewBookAppointment(d.Catalog, d.Appointments, d.Audit, d.Clock)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(d.Appointments, refresher, d.Audit, d.Clock)
	cancelUC := ucAppointment.NewCancelAppointment(d.Appointments, d.Audit)
	appointmentQueries := ucAppointment.NewQueries(d.Catalog, d.Appointments, refresher)
	openSlotsUC := ucAppointment.NewGetOpenSlots(d.Catalog, d.Appointments, d.Clock)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.HealthChecks)

	publicHandler := handlers.NewPublicHandler(availabilityQueries, openSlotsUC, d.Logger)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		rescheduleUC,
		cancelUC,
		appointmentQueries,
		d.Logger,
	)
	providerAppointmentHandler := handlers.NewProviderAppointmentHandler(appointmentQueries, d.Logger)

	availabilityHandler := handlers.NewAvailabilityHandler(
		declareUC,
		updateUC,
		removeUC,
		availabilityQueries,
		d.Logger,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditStore, d.Catalog, d.Logger)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public/providers/:business_name")
		{
			publicAPI.GET("/availabilities", publicHandler.ListAvailabilities)
			publicAPI.GET("/availabilities/by-date", publicHandler.ListAvailabilitiesByDate)
			publicAPI.GET("/slots", publicHandler.OpenSlots)
		}

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.JWTSecret))
		{
			booking := secured.Group("/book-appointments")
			{
				booking.POST("", appointmentHandler.Book)
				booking.GET("/all-appointments", appointmentHandler.Current)
				booking.GET("/active-appointments", appointmentHandler.Active)
				booking.GET("/appointments-history", appointmentHandler.History)
				booking.GET("/:id", appointmentHandler.Get)
				booking.PATCH("/:id", appointmentHandler.Reschedule)
				booking.DELETE("/:id", appointmentHandler.Cancel)
			}

			providers := secured.Group("/service-providers")
			{
				providers.POST("/availabilities", availabilityHandler.Declare)
				providers.GET("/availabilities/:id", availabilityHandler.Get)
				providers.PATCH("/availabilities/:id", availabilityHandler.Update)
				providers.DELETE("/availabilities/:id", availabilityHandler.Remove)

				providers.GET("/appointments", providerAppointmentHandler.All)
				providers.GET("/appointments/by-date", providerAppointmentHandler.ByDate)
				providers.GET("/appointments/past", providerAppointmentHandler.Past)
				providers.GET("/appointments/upcoming", providerAppointmentHandler.Upcoming)
				providers.GET("/appointments/:id", providerAppointmentHandler.Get)
			}

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
