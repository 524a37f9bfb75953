package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"mecaflow/internal/http/handler"
	"mecaflow/internal/http/middleware"
	"mecaflow/internal/http/response"
)

// Handlers bundles every route handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Attendance  *handler.AttendanceHandler
	Clients     *handler.ClientHandler
	Vehicles    *handler.VehicleHandler
	Employees   *handler.EmployeeHandler
	Diagnostics *handler.DiagnosticHandler
	Billing     *handler.BillingHandler
	Tasks       *handler.TaskHandler
	Reports     *handler.ReportHandler
	Chat        *handler.ChatHandler
}

// NewRouter wires the full HTTP surface. Authorization lives entirely in
// the gate middleware; the routes below carry no role checks of their own.
func NewRouter(h Handlers, loader *middleware.SessionLoader, gate *middleware.Gate) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(loader.Middleware)
	r.Use(gate.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, map[string]string{"service": "mecaflow"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Post("/logout", h.Auth.Logout)
		r.Post("/forgot-password", h.Auth.ForgotPassword)
		r.Post("/reset-password", h.Auth.ResetPassword)
		r.Get("/profile", h.Auth.Profile)
		r.Get("/denied", h.Auth.Denied)
	})

	r.Route("/asistencias", func(r chi.Router) {
		r.Get("/", h.Attendance.List)
		r.Get("/hoy", h.Attendance.Today)
		r.Post("/entrada", h.Attendance.CheckIn)
		r.Post("/salida", h.Attendance.CheckOut)
	})

	r.Route("/clientes", func(r chi.Router) {
		r.Get("/", h.Clients.List)
		r.Post("/", h.Clients.Create)
		r.Get("/{id}", h.Clients.Get)
		r.Put("/{id}", h.Clients.Update)
		r.Delete("/{id}", h.Clients.Delete)
	})

	r.Route("/vehiculos", func(r chi.Router) {
		r.Get("/", h.Vehicles.List)
		r.Get("/marcas", h.Vehicles.Brands)
		r.Post("/", h.Vehicles.Create)
		r.Get("/{id}", h.Vehicles.Get)
		r.Put("/{id}", h.Vehicles.Update)
		r.Delete("/{id}", h.Vehicles.Delete)
	})

	r.Route("/empleados", func(r chi.Router) {
		r.Get("/", h.Employees.List)
		r.Post("/", h.Employees.Create)
		r.Get("/{id}", h.Employees.Get)
		r.Put("/{id}", h.Employees.Update)
		r.Delete("/{id}", h.Employees.Delete)
	})

	r.Route("/diagnosticos", func(r chi.Router) {
		r.Get("/", h.Diagnostics.List)
		r.Post("/", h.Diagnostics.Create)
		r.Get("/{id}", h.Diagnostics.Get)
		r.Put("/{id}", h.Diagnostics.Update)
		r.Delete("/{id}", h.Diagnostics.Delete)
	})

	r.Route("/facturas", func(r chi.Router) {
		r.Get("/", h.Billing.ListInvoices)
		r.Post("/", h.Billing.CreateInvoice)
		r.Get("/{id}", h.Billing.GetInvoice)
		r.Put("/{id}", h.Billing.UpdateInvoice)
		r.Delete("/{id}", h.Billing.DeleteInvoice)
	})

	r.Route("/pagos", func(r chi.Router) {
		r.Get("/", h.Billing.ListPayments)
		r.Post("/", h.Billing.CreatePayment)
		r.Get("/{id}", h.Billing.GetPayment)
		r.Put("/{id}", h.Billing.UpdatePayment)
		r.Delete("/{id}", h.Billing.DeletePayment)
	})

	r.Route("/tareas", func(r chi.Router) {
		r.Get("/", h.Tasks.List)
		r.Post("/", h.Tasks.Create)
		r.Get("/{id}", h.Tasks.Get)
		r.Put("/{id}", h.Tasks.Update)
		r.Patch("/{id}/estado", h.Tasks.SetDone)
		r.Delete("/{id}", h.Tasks.Delete)
	})

	r.Route("/reportes", func(r chi.Router) {
		r.Get("/", h.Reports.List)
		r.Get("/resumen", h.Reports.Summary)
		r.Post("/", h.Reports.Create)
		r.Get("/{id}", h.Reports.Get)
		r.Put("/{id}", h.Reports.Update)
		r.Delete("/{id}", h.Reports.Delete)
	})

	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/", h.Chat.Send)
		r.Post("/reset", h.Chat.Reset)
	})

	return r
}
