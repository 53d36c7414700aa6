package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"suite_hotel/internal/app"
)

type Handlers struct {
	Catalog  *app.CatalogService
	Hotels   *app.HotelStore
	Bookings *app.BookingStore
	Session  *app.SessionStore
	Hub      *app.Hub
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	// long-lived; must stay outside the timeout wrapper
	s.mux.Get("/v1/events", h.events(s.origins))

	s.mux.Group(func(r chi.Router) {
		r.Use(Timeout(s.timeout))

		r.Get("/v1/hotels", h.listHotels)
		r.Post("/v1/hotels/refresh", h.refreshHotels)
		r.Get("/v1/hotels/selected", h.getSelectedHotel)
		r.Put("/v1/hotels/selected", h.putSelectedHotel)
		r.Delete("/v1/hotels/selected", h.deleteSelectedHotel)
		r.Get("/v1/hotels/{id}", h.getHotel)
		r.Get("/v1/hotels/{id}/rooms", h.listRooms)
		r.Post("/v1/hotels/{id}/quote", h.quote)

		r.Get("/v1/bookings", h.listBookings)
		r.Post("/v1/bookings", h.createBooking)
		r.Post("/v1/bookings/refresh", h.refreshBookings)
		r.Get("/v1/bookings/current", h.getCurrentBooking)
		r.Put("/v1/bookings/current", h.putCurrentBooking)
		r.Delete("/v1/bookings/current", h.deleteCurrentBooking)
		r.Get("/v1/bookings/saved", h.listSavedBookings)
		r.Get("/v1/bookings/saved/{id}", h.isBookingSaved)
		r.Put("/v1/bookings/saved/{id}", h.saveBooking)
		r.Delete("/v1/bookings/saved/{id}", h.removeSavedBooking)
		r.Get("/v1/bookings/{id}", h.getBooking)
		r.Post("/v1/bookings/{id}/cancel", h.cancelBooking)

		r.Get("/v1/session", h.getSession)
		r.Post("/v1/session", h.connect)
		r.Delete("/v1/session", h.disconnect)
		r.Post("/v1/session/balance", h.refreshBalance)
		r.Get("/v1/session/check", h.checkConnection)
	})
}
