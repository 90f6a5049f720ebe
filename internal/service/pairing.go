package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"signage/internal/logger"
	"signage/internal/metrics"
	"signage/internal/model"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// DefaultPairingTTL is how long a kiosk's pairing code stays usable.
const DefaultPairingTTL = 10 * time.Minute

// PairingView is a pairing as callers see it, with expiry already derived.
type PairingView struct {
	ID        uuid.UUID           `json:"id"`
	Status    model.PairingStatus `json:"status"`
	DisplayID *uuid.UUID          `json:"display_id,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	ExpiresAt time.Time           `json:"expires_at"`
}

type PairingService struct {
	gate          *Gate
	pairings      PairingStore
	displays      DisplayStore
	ttl           time.Duration
	publicBaseURL string
	now           func() time.Time
}

// NewPairingService builds the service. A non-positive ttl falls back to
// DefaultPairingTTL. publicBaseURL is the operator web app the QR code
// points at.
func NewPairingService(gate *Gate, pairings PairingStore, displays DisplayStore, ttl time.Duration, publicBaseURL string) *PairingService {
	if ttl <= 0 {
		ttl = DefaultPairingTTL
	}
	return &PairingService{
		gate:          gate,
		pairings:      pairings,
		displays:      displays,
		ttl:           ttl,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *PairingService) WithClock(now func() time.Time) *PairingService {
	s.now = now
	return s
}

// Create opens a new pending pairing. No credentials are needed.
func (s *PairingService) Create(ctx context.Context) (*PairingView, error) {
	now := s.now()
	pairing := &model.DisplayPairing{
		ID:        uuid.New(),
		Status:    model.PairingPending,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.pairings.Create(ctx, pairing); err != nil {
		return nil, fmt.Errorf("create pairing: %w", err)
	}

	metrics.PairingOutcomes.WithLabelValues("created").Inc()
	return s.view(pairing, now), nil
}

// Get reports the pairing's status at the current instant. Expiry is derived
// and never written back.
func (s *PairingService) Get(ctx context.Context, pairingID uuid.UUID) (*PairingView, error) {
	pairing, err := s.load(ctx, pairingID)
	if err != nil {
		return nil, err
	}
	return s.view(pairing, s.now()), nil
}

// SetDisplay completes a pending pairing by attaching one of the caller's
// displays. It is the only transition out of pending.
func (s *PairingService) SetDisplay(ctx context.Context, userID, pairingID, displayID uuid.UUID) (*PairingView, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	pairing, err := s.load(ctx, pairingID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := checkPending(pairing, now); err != nil {
		s.reject(ctx, pairing, err)
		return nil, err
	}

	display, err := s.displays.GetByID(ctx, displayID)
	if err != nil {
		return nil, fmt.Errorf("load display: %w", err)
	}
	if display == nil {
		return nil, fmt.Errorf("display %w", ErrNotFound)
	}
	if _, err := s.gate.Require(ctx, userID, display.OrganizationID, false); err != nil {
		return nil, err
	}

	won, err := s.pairings.Complete(ctx, pairing.ID, display.ID, now)
	if err != nil {
		return nil, fmt.Errorf("complete pairing: %w", err)
	}
	if !won {
		// Lost a race with another caller or with the clock.
		current, err := s.load(ctx, pairingID)
		if err != nil {
			return nil, err
		}
		err = checkPending(current, now)
		if err == nil {
			err = fmt.Errorf("%w: pairing is no longer pending", ErrConflict)
		}
		s.reject(ctx, current, err)
		return nil, err
	}

	pairing.Status = model.PairingCompleted
	pairing.DisplayID = &display.ID
	metrics.PairingOutcomes.WithLabelValues("completed").Inc()
	logger.FromContext(ctx).Info("display paired",
		zap.String("pairing_id", pairing.ID.String()),
		zap.String("display_id", display.ID.String()))
	return s.view(pairing, now), nil
}

// QRCode renders a PNG QR code that opens the operator's setup page for the
// pairing.
func (s *PairingService) QRCode(ctx context.Context, pairingID uuid.UUID, size int) ([]byte, error) {
	pairing, err := s.load(ctx, pairingID)
	if err != nil {
		return nil, err
	}
	if pairing.StatusAt(s.now()) == model.PairingExpired {
		return nil, fmt.Errorf("pairing %w", ErrExpired)
	}
	if size <= 0 {
		size = 256
	}

	png, err := qrcode.Encode(s.SetupURL(pairing.ID), qrcode.High, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}

// SetupURL is the operator page encoded in the pairing's QR code.
func (s *PairingService) SetupURL(pairingID uuid.UUID) string {
	return s.publicBaseURL + "/setup-display/" + pairingID.String()
}

func (s *PairingService) load(ctx context.Context, pairingID uuid.UUID) (*model.DisplayPairing, error) {
	pairing, err := s.pairings.GetByID(ctx, pairingID)
	if err != nil {
		return nil, fmt.Errorf("load pairing: %w", err)
	}
	if pairing == nil {
		return nil, fmt.Errorf("pairing %w", ErrNotFound)
	}
	return pairing, nil
}

func (s *PairingService) reject(ctx context.Context, pairing *model.DisplayPairing, err error) {
	outcome := "conflict"
	if pairing.StatusAt(s.now()) == model.PairingExpired {
		outcome = "expired"
	}
	metrics.PairingOutcomes.WithLabelValues(outcome).Inc()
	logger.FromContext(ctx).Warn("pairing rejected",
		zap.String("pairing_id", pairing.ID.String()),
		zap.Error(err))
}

func (s *PairingService) view(p *model.DisplayPairing, now time.Time) *PairingView {
	return &PairingView{
		ID:        p.ID,
		Status:    p.StatusAt(now),
		DisplayID: p.DisplayID,
		CreatedAt: p.CreatedAt,
		ExpiresAt: p.ExpiresAt,
	}
}

func checkPending(p *model.DisplayPairing, now time.Time) error {
	switch p.StatusAt(now) {
	case model.PairingCompleted:
		return fmt.Errorf("%w: pairing already completed", ErrConflict)
	case model.PairingExpired:
		return fmt.Errorf("pairing %w", ErrExpired)
	}
	return nil
}
