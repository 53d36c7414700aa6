package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"suite_hotel/internal/app"
	"suite_hotel/internal/domain"
)

type hotelListResponse struct {
	Hotels  []domain.Hotel `json:"hotels"`
	Total   int            `json:"total"`
	Loading bool           `json:"loading"`
	Error   string         `json:"error,omitempty"`
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	price, err := app.ParsePriceBucket(q.Get("price"))
	if err != nil {
		writeError(w, err, "")
		return
	}
	sortKey, err := app.ParseSortKey(q.Get("sort"))
	if err != nil {
		writeError(w, err, "")
		return
	}
	f := app.HotelFilter{Search: q.Get("q"), Price: price, Amenities: q["amenity"]}
	h.Hotels.SetSearchQuery(f.Search)

	st := h.Hotels.State()
	list := app.SortHotels(app.FilterHotels(st.Hotels, f), sortKey)
	writeCacheable(w, r, hotelListResponse{Hotels: list, Total: len(list), Loading: st.Loading, Error: st.Error})
}

// refreshHotels is the user-initiated retry; ?force=true bypasses the cache.
func (h *Handlers) refreshHotels(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("force") == "true" {
		if err := h.Catalog.Invalidate(r.Context()); err != nil {
			writeError(w, err, "")
			return
		}
	}
	if err := h.Catalog.Refresh(r.Context()); err != nil {
		writeError(w, err, h.Hotels.State().Error)
		return
	}
	writeJSON(w, http.StatusOK, h.Hotels.State())
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, ok := h.Hotels.GetHotelByID(chi.URLParam(r, "id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	writeCacheable(w, r, hotel)
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Catalog.Rooms(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeCacheable(w, r, rooms)
}

type selectRequest struct {
	ID string `json:"id" validate:"required"`
}

func (h *Handlers) getSelectedHotel(w http.ResponseWriter, r *http.Request) {
	hotel, ok := h.Hotels.SelectedHotel()
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "no hotel selected")
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (h *Handlers) putSelectedHotel(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	hotel, ok := h.Hotels.GetHotelByID(req.ID)
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	h.Hotels.SetSelectedHotel(&hotel)
	writeJSON(w, http.StatusOK, hotel)
}

func (h *Handlers) deleteSelectedHotel(w http.ResponseWriter, r *http.Request) {
	h.Hotels.SetSelectedHotel(nil)
	w.WriteHeader(http.StatusNoContent)
}

type quoteRequest struct {
	CheckIn  string `json:"checkIn" validate:"required"`
	CheckOut string `json:"checkOut" validate:"required"`
}

func (h *Handlers) quote(w http.ResponseWriter, r *http.Request) {
	hotel, ok := h.Hotels.GetHotelByID(chi.URLParam(r, "id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	var req quoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	q, err := app.QuoteStay(hotel.Price, req.CheckIn, req.CheckOut)
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, q)
}
