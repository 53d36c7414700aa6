package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"suite_hotel/internal/adapters/observability"
	"suite_hotel/internal/domain"
)

const (
	DefaultSessionKey = "sui-wallet-user"
	DefaultCoinType   = "0x2::sui::SUI"
	defaultWalletName = "sui"
)

// AvatarURL derives the identicon for a wallet address.
func AvatarURL(address string) string {
	return "https://api.dicebear.com/7.x/identicon/svg?seed=" + url.QueryEscape(address)
}

// SessionStore projects the wallet provider's connection state. It caches
// the last known wallet event and never checks liveness itself.
type SessionStore struct {
	storage  domain.KeyValueStore
	wallet   domain.WalletProvider // optional
	key      string
	coinType string
	hub      *Hub

	mu        sync.RWMutex
	user      *domain.User
	connected bool
}

type SessionConfig struct {
	Key      string
	CoinType string
}

func NewSessionStore(storage domain.KeyValueStore, wallet domain.WalletProvider, cfg SessionConfig, hub *Hub) *SessionStore {
	if cfg.Key == "" {
		cfg.Key = DefaultSessionKey
	}
	if cfg.CoinType == "" {
		cfg.CoinType = DefaultCoinType
	}
	return &SessionStore{storage: storage, wallet: wallet, key: cfg.Key, coinType: cfg.CoinType, hub: hub}
}

// Rehydrate loads the persisted profile (if any) into memory. Connected is
// left false until CheckConnection runs, as after a page reload.
func (s *SessionStore) Rehydrate(ctx context.Context) error {
	u, err := s.load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.user = u
	s.connected = false
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Connect(ctx context.Context, address, walletName string) (domain.User, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.User{}, fmt.Errorf("%w: address is required", domain.ErrInvalidInput)
	}
	if walletName == "" {
		walletName = defaultWalletName
	}
	u := domain.User{
		Address:    address,
		Picture:    AvatarURL(address),
		Balance:    "0",
		WalletName: walletName,
	}
	if err := s.persist(ctx, u); err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	s.user = &u
	s.connected = true
	s.mu.Unlock()

	log.Info().Str("address", address).Str("wallet", walletName).Msg("wallet connected")
	observability.ObserveStore("session", "connect")
	s.hub.Publish(TopicSessionChanged)
	return u, nil
}

func (s *SessionStore) Disconnect(ctx context.Context) error {
	err := s.storage.Delete(ctx, s.key)

	s.mu.Lock()
	s.user = nil
	s.connected = false
	s.mu.Unlock()

	observability.ObserveStore("session", "disconnect")
	s.hub.Publish(TopicSessionChanged)
	if err != nil {
		log.Error().Err(err).Msg("session: clearing storage failed")
		return fmt.Errorf("clear session: %w", err)
	}
	log.Info().Msg("wallet disconnected")
	return nil
}

// CheckConnection re-derives the connected flag from durable storage.
func (s *SessionStore) CheckConnection(ctx context.Context) bool {
	u, err := s.load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("session: reading storage failed")
		u = nil
	}
	connected := u != nil && u.Address != ""

	s.mu.Lock()
	s.user = u
	s.connected = connected
	s.mu.Unlock()
	return connected
}

// RefreshBalance asks the wallet provider for the current balance. On
// failure the cached balance is kept.
func (s *SessionStore) RefreshBalance(ctx context.Context) (domain.User, error) {
	s.mu.RLock()
	if s.user == nil || !s.connected {
		s.mu.RUnlock()
		return domain.User{}, domain.ErrNotConnected
	}
	u := *s.user
	s.mu.RUnlock()

	if s.wallet == nil {
		return u, nil
	}
	bal, err := s.wallet.Balance(ctx, u.Address, s.coinType)
	if err != nil {
		log.Warn().Err(err).Str("address", u.Address).Msg("session: balance refresh failed")
		return u, fmt.Errorf("refresh balance: %w", err)
	}
	u.Balance = bal
	if err := s.persist(ctx, u); err != nil {
		return u, err
	}

	s.mu.Lock()
	if s.user != nil && s.user.Address == u.Address {
		s.user.Balance = bal
	}
	s.mu.Unlock()
	s.hub.Publish(TopicSessionChanged)
	return u, nil
}

func (s *SessionStore) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func (s *SessionStore) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Address returns the connected wallet address or ErrNotConnected.
func (s *SessionStore) Address() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.connected || s.user == nil || s.user.Address == "" {
		return "", domain.ErrNotConnected
	}
	return s.user.Address, nil
}

func (s *SessionStore) persist(ctx context.Context, u domain.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.storage.Put(ctx, s.key, b); err != nil {
		log.Error().Err(err).Msg("session: persisting profile failed")
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *SessionStore) load(ctx context.Context) (*domain.User, error) {
	b, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var u domain.User
	if err := json.Unmarshal(b, &u); err != nil {
		// a corrupt entry is treated as no session
		log.Warn().Err(err).Msg("session: stored profile unreadable")
		return nil, nil
	}
	return &u, nil
}
