package registration

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gdg-garage/iftar-registration/internal/ledger"
	"github.com/gdg-garage/iftar-registration/internal/models"
)

// Notifier is told about every registration that reached the ledger.
type Notifier interface {
	NotifyRegistration(registration models.Registration) error
}

// Registrar is the only writer of the ledger. It holds a lock across the
// load, number and append steps so two submissions can never receive the
// same ticket.
type Registrar struct {
	mu       sync.Mutex
	store    ledger.Store
	notifier Notifier
	now      func() time.Time
}

func NewRegistrar(store ledger.Store, notifier Notifier) *Registrar {
	return &Registrar{store: store, notifier: notifier, now: time.Now}
}

func (r *Registrar) Submit(ctx context.Context, form Form) (models.Registration, error) {
	reg, err := r.submit(ctx, form)
	if err != nil {
		return models.Registration{}, err
	}

	slog.Info("registration stored",
		"ticket", reg.TicketNumber,
		"department", reg.Department,
		"total_people", reg.TotalPeople,
		"total_price", reg.TotalPrice,
	)

	if r.notifier != nil {
		if err := r.notifier.NotifyRegistration(reg); err != nil {
			slog.Warn("failed to send registration notification", "ticket", reg.TicketNumber, "error", err)
		}
	}
	return reg, nil
}

func (r *Registrar) submit(ctx context.Context, form Form) (models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.store.Load(ctx)
	if err != nil {
		return models.Registration{}, err
	}

	reg, err := Build(form, NextTicketNumber(current), r.now())
	if err != nil {
		return models.Registration{}, err
	}

	if err := r.store.Append(ctx, reg); err != nil {
		return models.Registration{}, err
	}
	return reg, nil
}

func (r *Registrar) DeleteLast(ctx context.Context) (models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed, err := r.store.DeleteLast(ctx)
	if err != nil {
		return models.Registration{}, err
	}
	slog.Info("last registration deleted", "ticket", removed.TicketNumber)
	return removed, nil
}

// ClearAll wipes the ledger. Ticket numbering restarts at 1 afterwards.
func (r *Registrar) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.ClearAll(ctx); err != nil {
		return err
	}
	slog.Info("ledger cleared")
	return nil
}
