package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"suite_hotel/internal/app"
	"suite_hotel/internal/domain"
)

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	st := h.Bookings.State()
	writeCacheable(w, r, struct {
		Bookings []domain.Booking `json:"bookings"`
		Loading  bool             `json:"loading"`
		Error    string           `json:"error,omitempty"`
	}{st.Bookings, st.Loading, st.Error})
}

func (h *Handlers) refreshBookings(w http.ResponseWriter, r *http.Request) {
	if err := h.Bookings.FetchBookings(r.Context()); err != nil {
		writeError(w, err, h.Bookings.State().Error)
		return
	}
	writeJSON(w, http.StatusOK, h.Bookings.State())
}

type createBookingRequest struct {
	HotelID  string `json:"hotelId" validate:"required"`
	RoomType string `json:"roomType" validate:"required"`
	CheckIn  string `json:"checkIn" validate:"required"`
	CheckOut string `json:"checkOut" validate:"required"`
	Guests   int    `json:"guests" validate:"min=1"`
	NFTToken string `json:"nftToken,omitempty"`
}

// createBooking snapshots the hotel and prices the stay before handing the
// draft to the store.
func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	hotel, ok := h.Hotels.GetHotelByID(req.HotelID)
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	q, err := app.QuoteStay(hotel.Price, req.CheckIn, req.CheckOut)
	if err != nil {
		writeError(w, err, "")
		return
	}

	draft := domain.BookingDraft{
		HotelID:    hotel.ID,
		HotelName:  hotel.Name,
		RoomType:   req.RoomType,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Nights:     q.Nights,
		Guests:     req.Guests,
		TotalPrice: q.Total,
		NFTToken:   req.NFTToken,
	}
	if len(hotel.Images) > 0 {
		draft.HotelImage = hotel.Images[0]
	}
	if addr, err := h.Session.Address(); err == nil {
		draft.GuestAddress = addr
	}

	b, err := h.Bookings.CreateBooking(r.Context(), draft)
	if err != nil {
		writeError(w, err, "")
		return
	}
	w.Header().Set("Location", "/v1/bookings/"+b.ID)
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Bookings.LookupBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeCacheable(w, r, b)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Bookings.CancelBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) getCurrentBooking(w http.ResponseWriter, r *http.Request) {
	b, ok := h.Bookings.CurrentBooking()
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "no current booking")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) putCurrentBooking(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	b, ok := h.Bookings.BookingByID(req.ID)
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "booking not found")
		return
	}
	h.Bookings.SetCurrentBooking(&b)
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) deleteCurrentBooking(w http.ResponseWriter, r *http.Request) {
	h.Bookings.SetCurrentBooking(nil)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listSavedBookings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Bookings.SavedBookings())
}

func (h *Handlers) isBookingSaved(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"saved": h.Bookings.IsBookingSaved(chi.URLParam(r, "id"))})
}

func (h *Handlers) saveBooking(w http.ResponseWriter, r *http.Request) {
	b, ok := h.Bookings.BookingByID(chi.URLParam(r, "id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "booking not found")
		return
	}
	h.Bookings.SaveBooking(b)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) removeSavedBooking(w http.ResponseWriter, r *http.Request) {
	h.Bookings.RemoveSavedBooking(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
