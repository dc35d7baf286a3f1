package event

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ingresso/backend/domain"
	"github.com/ingresso/backend/repository"
)

// UseCase exposes the event application services: partner-facing creation and
// customer-facing ticket reservation.
type UseCase struct {
	events    repository.EventRepository
	partners  repository.PartnerRepository
	customers repository.CustomerRepository
	logger    *zap.Logger
}

func New(events repository.EventRepository, partners repository.PartnerRepository, customers repository.CustomerRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		events:    events,
		partners:  partners,
		customers: customers,
		logger:    logger,
	}
}

type CreateInput struct {
	PartnerID  string
	Name       string
	Date       string
	TotalSpots int
}

type SubscribeInput struct {
	EventID    string
	CustomerID string
}

type Output struct {
	ID             string
	Name           string
	Date           string
	TotalSpots     int
	PartnerID      string
	RemainingSpots int
}

type SubscribeOutput struct {
	EventID       string
	EventTicketID string
	CustomerID    string
	Ordering      int
	ReservedAt    time.Time
}

func outputFrom(event *domain.Event) Output {
	return Output{
		ID:             event.ID().String(),
		Name:           event.Name().String(),
		Date:           event.Date().Format(domain.DateLayout),
		TotalSpots:     event.TotalSpots(),
		PartnerID:      event.PartnerID().String(),
		RemainingSpots: event.RemainingSpots(),
	}
}

// Create registers a new event on behalf of an existing partner.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (Output, error) {
	partnerID, err := domain.ParsePartnerID(in.PartnerID)
	if err != nil {
		return Output{}, err
	}
	partner, err := uc.partners.PartnerOfID(ctx, partnerID)
	if err != nil {
		return Output{}, err
	}
	if partner == nil {
		return Output{}, domain.ErrPartnerNotFound
	}

	event, err := domain.NewEvent(in.Name, in.Date, in.TotalSpots, partner)
	if err != nil {
		return Output{}, err
	}

	created, err := uc.events.Create(ctx, event)
	if err != nil {
		return Output{}, err
	}

	uc.logger.Info("event created",
		zap.String("event_id", created.ID().String()),
		zap.String("partner_id", created.PartnerID().String()),
		zap.Int("total_spots", created.TotalSpots()))
	return outputFrom(created), nil
}

// GetByID returns the event or nil when absent.
func (uc *UseCase) GetByID(ctx context.Context, rawID string) (*Output, error) {
	id, err := domain.ParseEventID(rawID)
	if err != nil {
		return nil, err
	}
	event, err := uc.events.EventOfID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}
	out := outputFrom(event)
	return &out, nil
}

// Subscribe reserves one spot for the customer. The customer is checked before
// the event, and the load-reserve-save cycle runs inside a store transaction
// with the event row locked, so concurrent subscribers serialize on the same
// aggregate and overselling cannot happen.
func (uc *UseCase) Subscribe(ctx context.Context, in SubscribeInput) (SubscribeOutput, error) {
	eventID, err := domain.ParseEventID(in.EventID)
	if err != nil {
		return SubscribeOutput{}, err
	}
	customerID, err := domain.ParseCustomerID(in.CustomerID)
	if err != nil {
		return SubscribeOutput{}, err
	}

	customer, err := uc.customers.CustomerOfID(ctx, customerID)
	if err != nil {
		return SubscribeOutput{}, err
	}
	if customer == nil {
		return SubscribeOutput{}, domain.ErrCustomerNotFound
	}

	var out SubscribeOutput
	err = uc.events.WithTx(ctx, func(ctx context.Context) error {
		event, err := uc.events.EventForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if event == nil {
			return domain.ErrEventNotFound
		}

		ticket, err := event.ReserveTicket(customerID)
		if err != nil {
			return err
		}
		if _, err := uc.events.Update(ctx, event); err != nil {
			return err
		}

		out = SubscribeOutput{
			EventID:       event.ID().String(),
			EventTicketID: ticket.ID().String(),
			CustomerID:    customerID.String(),
			Ordering:      ticket.Ordering(),
			ReservedAt:    time.Now().UTC(),
		}
		return nil
	})
	if err != nil {
		return SubscribeOutput{}, err
	}

	uc.logger.Info("ticket reserved",
		zap.String("event_id", out.EventID),
		zap.String("event_ticket_id", out.EventTicketID),
		zap.String("customer_id", out.CustomerID),
		zap.Int("ordering", out.Ordering))
	return out, nil
}
