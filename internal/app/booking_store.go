package app

import (
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"suite_hotel/internal/adapters/observability"
	"suite_hotel/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// BookingSource loads the booking history. The production source reads the
// gateway's reservations; tests inject fixed results.
type BookingSource interface {
	LoadBookings(ctx context.Context) ([]domain.Booking, error)
}

type BookingState struct {
	Bookings      []domain.Booking `json:"bookings"`
	SavedBookings []domain.Booking `json:"savedBookings"`
	Current       *domain.Booking  `json:"current,omitempty"`
	Loading       bool             `json:"loading"`
	Error         string           `json:"error,omitempty"`
}

type BookingStoreOption func(*BookingStore)

func WithIDGenerator(f func() string) BookingStoreOption {
	return func(s *BookingStore) { s.newID = f }
}

func WithTxRefGenerator(f func() string) BookingStoreOption {
	return func(s *BookingStore) { s.newTxRef = f }
}

// BookingStore owns the booking history, the saved subset and the current
// booking hand-off pointer.
type BookingStore struct {
	src  BookingSource
	repo domain.BookingRepository // optional write-through
	hub  *Hub

	newID    func() string
	newTxRef func() string

	mu       sync.RWMutex
	bookings []domain.Booking
	saved    []domain.Booking
	current  *domain.Booking
	loading  bool
	err      string
	fetchSeq uint64

	cancelling map[string]struct{} // ids with a cancel write in flight
}

func NewBookingStore(src BookingSource, repo domain.BookingRepository, hub *Hub, opts ...BookingStoreOption) *BookingStore {
	s := &BookingStore{
		src:      src,
		repo:     repo,
		hub:      hub,
		newID:    newBookingID,
		newTxRef: newTxRef,

		cancelling: make(map[string]struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// FetchBookings replaces the collection with the source's result. On failure
// the collection is left untouched and the error is recorded. When fetches
// overlap only the most recently started one may write.
func (s *BookingStore) FetchBookings(ctx context.Context) error {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.loading = true
	s.mu.Unlock()

	if s.src == nil {
		return s.finishFetch(seq, nil, errors.New("no booking source configured"))
	}
	list, err := s.src.LoadBookings(ctx)
	return s.finishFetch(seq, list, err)
}

func (s *BookingStore) finishFetch(seq uint64, list []domain.Booking, err error) error {
	s.mu.Lock()
	if seq != s.fetchSeq {
		s.mu.Unlock()
		log.Debug().Uint64("seq", seq).Msg("booking store: dropping stale fetch result")
		return err
	}
	s.loading = false
	if err != nil {
		s.err = "Failed to fetch bookings. Please try again."
		s.mu.Unlock()
		log.Warn().Err(err).Msg("booking store: fetch failed")
		observability.ObserveStore("bookings", "fetch_error")
		s.hub.Publish(TopicBookingsError)
		return fmt.Errorf("fetch bookings: %w", err)
	}
	s.bookings = cloneBookings(list)
	s.err = ""
	s.mu.Unlock()

	log.Debug().Int("count", len(list)).Msg("booking store: bookings replaced")
	observability.ObserveStore("bookings", "fetch")
	s.hub.Publish(TopicBookingsUpdated)
	return nil
}

// CreateBooking finalises a draft, appends it and makes it the current
// booking. There is no idempotency key: identical drafts give distinct
// bookings.
func (s *BookingStore) CreateBooking(ctx context.Context, draft domain.BookingDraft) (domain.Booking, error) {
	if err := validate.Struct(draft); err != nil {
		return domain.Booking{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, validationMessage(err))
	}
	checkIn, err := ParseDate(draft.CheckIn)
	if err != nil {
		return domain.Booking{}, err
	}
	checkOut, err := ParseDate(draft.CheckOut)
	if err != nil {
		return domain.Booking{}, err
	}

	b := domain.Booking{
		ID:            s.newID(),
		GuestAddress:  draft.GuestAddress,
		HotelID:       draft.HotelID,
		HotelName:     draft.HotelName,
		HotelImage:    draft.HotelImage,
		RoomType:      draft.RoomType,
		CheckIn:       checkIn.Format(BookingDateLayout),
		CheckOut:      checkOut.Format(BookingDateLayout),
		Nights:        draft.Nights,
		Guests:        draft.Guests,
		TotalPrice:    draft.TotalPrice,
		Status:        domain.StatusConfirmed,
		TransactionID: s.newTxRef(),
		NFTToken:      draft.NFTToken,
	}

	if s.repo != nil {
		s.setLoading(true)
		if err := s.repo.InsertBooking(ctx, b); err != nil {
			s.mu.Lock()
			s.loading = false
			s.err = "Failed to create booking. Please try again."
			s.mu.Unlock()
			log.Error().Err(err).Str("hotel_id", b.HotelID).Msg("booking store: persist failed")
			observability.ObserveStore("bookings", "create_error")
			s.hub.Publish(TopicBookingsError)
			return domain.Booking{}, fmt.Errorf("persist booking: %w", err)
		}
	}

	s.mu.Lock()
	s.bookings = append(s.bookings, b)
	cur := b
	s.current = &cur
	s.loading = false
	s.err = ""
	s.mu.Unlock()

	log.Info().Str("booking_id", b.ID).Str("hotel_id", b.HotelID).Float64("total", b.TotalPrice).Msg("booking created")
	observability.ObserveStore("bookings", "create")
	s.hub.Publish(TopicBookingsUpdated)
	s.hub.Publish(TopicBookingCurrent)
	return b, nil
}

// CancelBooking moves a confirmed or pending booking to cancelled. The new
// status is mirrored into the current and saved copies. Only one cancel per
// id may be in flight; a concurrent one gets ErrInvalidTransition.
func (s *BookingStore) CancelBooking(ctx context.Context, id string) (domain.Booking, error) {
	s.mu.Lock()
	idx := indexOfBooking(s.bookings, id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Booking{}, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	if _, busy := s.cancelling[id]; busy || s.bookings[idx].Status == domain.StatusCancelled {
		s.mu.Unlock()
		return domain.Booking{}, fmt.Errorf("booking %s already cancelled: %w", id, domain.ErrInvalidTransition)
	}
	s.cancelling[id] = struct{}{}
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.UpdateBookingStatus(ctx, id, domain.StatusCancelled); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.mu.Lock()
			delete(s.cancelling, id)
			s.err = "Failed to cancel booking. Please try again."
			s.mu.Unlock()
			log.Error().Err(err).Str("booking_id", id).Msg("booking store: persist cancel failed")
			observability.ObserveStore("bookings", "cancel_error")
			s.hub.Publish(TopicBookingsError)
			return domain.Booking{}, fmt.Errorf("persist cancel: %w", err)
		}
	}

	s.mu.Lock()
	delete(s.cancelling, id)
	// a fetch may have replaced the collection while the write was in flight
	idx = indexOfBooking(s.bookings, id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Booking{}, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	if s.bookings[idx].Status == domain.StatusCancelled {
		s.mu.Unlock()
		return domain.Booking{}, fmt.Errorf("booking %s already cancelled: %w", id, domain.ErrInvalidTransition)
	}
	s.bookings[idx].Status = domain.StatusCancelled
	b := s.bookings[idx]
	for i := range s.saved {
		if s.saved[i].ID == id {
			s.saved[i].Status = domain.StatusCancelled
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current.Status = domain.StatusCancelled
	}
	s.err = ""
	s.mu.Unlock()

	log.Info().Str("booking_id", id).Msg("booking cancelled")
	observability.ObserveStore("bookings", "cancel")
	s.hub.Publish(TopicBookingsUpdated)
	return b, nil
}

func (s *BookingStore) SetCurrentBooking(b *domain.Booking) {
	s.mu.Lock()
	if b == nil {
		s.current = nil
	} else {
		c := *b
		s.current = &c
	}
	s.mu.Unlock()
	s.hub.Publish(TopicBookingCurrent)
}

func (s *BookingStore) CurrentBooking() (domain.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Booking{}, false
	}
	return *s.current, true
}

// SaveBooking adds b to the saved subset; a booking already saved is a no-op.
func (s *BookingStore) SaveBooking(b domain.Booking) {
	s.mu.Lock()
	if indexOfBooking(s.saved, b.ID) >= 0 {
		s.mu.Unlock()
		return
	}
	s.saved = append(s.saved, b)
	s.mu.Unlock()
	s.hub.Publish(TopicBookingsSaved)
}

func (s *BookingStore) RemoveSavedBooking(id string) {
	s.mu.Lock()
	i := indexOfBooking(s.saved, id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.saved = append(s.saved[:i:i], s.saved[i+1:]...)
	s.mu.Unlock()
	s.hub.Publish(TopicBookingsSaved)
}

func (s *BookingStore) IsBookingSaved(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOfBooking(s.saved, id) >= 0
}

func (s *BookingStore) BookingByID(id string) (domain.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOfBooking(s.bookings, id); i >= 0 {
		return s.bookings[i], true
	}
	return domain.Booking{}, false
}

// LookupBooking checks the in-memory collection first, then the repository,
// so bookings persisted by an earlier process are still reachable.
func (s *BookingStore) LookupBooking(ctx context.Context, id string) (domain.Booking, error) {
	if b, ok := s.BookingByID(id); ok {
		return b, nil
	}
	if s.repo == nil {
		return domain.Booking{}, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	b, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("booking %s: %w", id, err)
	}
	return b, nil
}

func (s *BookingStore) Bookings() []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneBookings(s.bookings)
}

func (s *BookingStore) SavedBookings() []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneBookings(s.saved)
}

func (s *BookingStore) State() BookingState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := BookingState{
		Bookings:      cloneBookings(s.bookings),
		SavedBookings: cloneBookings(s.saved),
		Loading:       s.loading,
		Error:         s.err,
	}
	if s.current != nil {
		c := *s.current
		st.Current = &c
	}
	return st
}

func (s *BookingStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func indexOfBooking(list []domain.Booking, id string) int {
	for i, b := range list {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func cloneBookings(in []domain.Booking) []domain.Booking {
	out := make([]domain.Booking, len(in))
	copy(out, in)
	return out
}

// newBookingID returns a UUIDv7, which embeds the creation timestamp.
func newBookingID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// newTxRef renders a shortened transaction reference: 0x<8 hex>...<8 hex>.
func newTxRef() string {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return "0x00000000...00000000"
	}
	return "0x" + hex.EncodeToString(b[:4]) + "..." + hex.EncodeToString(b[4:])
}

func validationMessage(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return err.Error()
	}
	fe := ves[0]
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}
