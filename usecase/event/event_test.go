package event_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/ingresso/backend/domain"
	"github.com/ingresso/backend/repository/memory"
	"github.com/ingresso/backend/usecase/customer"
	"github.com/ingresso/backend/usecase/event"
	"github.com/ingresso/backend/usecase/partner"
)

type fixture struct {
	events    *event.UseCase
	partners  *partner.UseCase
	customers *customer.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return &fixture{
		events: event.New(
			memory.NewEventRepository(store),
			memory.NewPartnerRepository(store),
			memory.NewCustomerRepository(store),
			nil,
		),
		partners:  partner.New(memory.NewPartnerRepository(store), nil),
		customers: customer.New(memory.NewCustomerRepository(store), nil),
	}
}

func (f *fixture) createPartner(t *testing.T, ctx context.Context) string {
	t.Helper()
	out, err := f.partners.Create(ctx, partner.CreateInput{
		Name:  "Acme Shows",
		CNPJ:  "11.222.333/0001-81",
		Email: "contact@acmeshows.com",
	})
	if err != nil {
		t.Fatalf("create partner: %v", err)
	}
	return out.ID
}

func (f *fixture) createCustomer(t *testing.T, ctx context.Context, cpf, email string) string {
	t.Helper()
	out, err := f.customers.Create(ctx, customer.CreateInput{
		Name:  "John Doe",
		CPF:   cpf,
		Email: email,
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return out.ID
}

func (f *fixture) createEvent(t *testing.T, ctx context.Context, partnerID string, spots int) string {
	t.Helper()
	out, err := f.events.Create(ctx, event.CreateInput{
		PartnerID:  partnerID,
		Name:       "Rock in Rio",
		Date:       "2026-09-13",
		TotalSpots: spots,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return out.ID
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("registers an event for an existing partner", func(t *testing.T) {
		f := newFixture(t)
		partnerID := f.createPartner(t, ctx)

		out, err := f.events.Create(ctx, event.CreateInput{
			PartnerID:  partnerID,
			Name:       "Rock in Rio",
			Date:       "2026-09-13",
			TotalSpots: 100,
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if out.RemainingSpots != 100 {
			t.Errorf("RemainingSpots = %d, want 100", out.RemainingSpots)
		}

		got, err := f.events.GetByID(ctx, out.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got == nil || got.Date != "2026-09-13" {
			t.Errorf("GetByID = %+v, want date 2026-09-13", got)
		}
	})

	t.Run("rejects an unknown partner", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.events.Create(ctx, event.CreateInput{
			PartnerID:  "5f1b2c3d-0000-4000-8000-000000000000",
			Name:       "Rock in Rio",
			Date:       "2026-09-13",
			TotalSpots: 100,
		})
		if !domain.IsDomainError(err, domain.ErrCodePartnerNotFound) {
			t.Fatalf("err = %v, want PARTNER_NOT_FOUND", err)
		}
	})

	t.Run("rejects a bad date", func(t *testing.T) {
		f := newFixture(t)
		partnerID := f.createPartner(t, ctx)

		_, err := f.events.Create(ctx, event.CreateInput{
			PartnerID:  partnerID,
			Name:       "Rock in Rio",
			Date:       "13/09/2026",
			TotalSpots: 100,
		})
		if !domain.IsDomainError(err, domain.ErrCodeInvalidDate) {
			t.Fatalf("err = %v, want INVALID_DATE", err)
		}
	})
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("reserves the next spot", func(t *testing.T) {
		f := newFixture(t)
		partnerID := f.createPartner(t, ctx)
		eventID := f.createEvent(t, ctx, partnerID, 2)
		customerID := f.createCustomer(t, ctx, "926.400.290-10", "john.doe@gmail.com")

		out, err := f.events.Subscribe(ctx, event.SubscribeInput{EventID: eventID, CustomerID: customerID})
		if err != nil {
			t.Fatalf("Subscribe: %v", err)
		}
		if out.Ordering != 1 {
			t.Errorf("Ordering = %d, want 1", out.Ordering)
		}
		if out.EventTicketID == "" {
			t.Error("expected an event ticket id")
		}

		got, err := f.events.GetByID(ctx, eventID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.RemainingSpots != 1 {
			t.Errorf("RemainingSpots = %d, want 1", got.RemainingSpots)
		}
	})

	t.Run("checks the customer before the event", func(t *testing.T) {
		f := newFixture(t)

		// Both ids are unknown; the customer guard wins.
		_, err := f.events.Subscribe(ctx, event.SubscribeInput{
			EventID:    "5f1b2c3d-0000-4000-8000-000000000001",
			CustomerID: "5f1b2c3d-0000-4000-8000-000000000002",
		})
		if !domain.IsDomainError(err, domain.ErrCodeCustomerNotFound) {
			t.Fatalf("err = %v, want CUSTOMER_NOT_FOUND", err)
		}
	})

	t.Run("rejects an unknown event", func(t *testing.T) {
		f := newFixture(t)
		customerID := f.createCustomer(t, ctx, "926.400.290-10", "john.doe@gmail.com")

		_, err := f.events.Subscribe(ctx, event.SubscribeInput{
			EventID:    "5f1b2c3d-0000-4000-8000-000000000001",
			CustomerID: customerID,
		})
		if !domain.IsDomainError(err, domain.ErrCodeEventNotFound) {
			t.Fatalf("err = %v, want EVENT_NOT_FOUND", err)
		}
	})

	t.Run("rejects a repeat subscriber even when sold out", func(t *testing.T) {
		f := newFixture(t)
		partnerID := f.createPartner(t, ctx)
		eventID := f.createEvent(t, ctx, partnerID, 1)
		customerID := f.createCustomer(t, ctx, "926.400.290-10", "john.doe@gmail.com")

		if _, err := f.events.Subscribe(ctx, event.SubscribeInput{EventID: eventID, CustomerID: customerID}); err != nil {
			t.Fatalf("first Subscribe: %v", err)
		}
		_, err := f.events.Subscribe(ctx, event.SubscribeInput{EventID: eventID, CustomerID: customerID})
		if !domain.IsDomainError(err, domain.ErrCodeAlreadyRegistered) {
			t.Fatalf("err = %v, want ALREADY_REGISTERED", err)
		}
		if err.Error() != "Email already registered" {
			t.Errorf("message = %q, want %q", err.Error(), "Email already registered")
		}
	})

	t.Run("rejects a new subscriber once sold out", func(t *testing.T) {
		f := newFixture(t)
		partnerID := f.createPartner(t, ctx)
		eventID := f.createEvent(t, ctx, partnerID, 1)
		first := f.createCustomer(t, ctx, "926.400.290-10", "john.doe@gmail.com")
		second := f.createCustomer(t, ctx, "111.444.777-35", "jane.doe@gmail.com")

		if _, err := f.events.Subscribe(ctx, event.SubscribeInput{EventID: eventID, CustomerID: first}); err != nil {
			t.Fatalf("first Subscribe: %v", err)
		}
		_, err := f.events.Subscribe(ctx, event.SubscribeInput{EventID: eventID, CustomerID: second})
		if !domain.IsDomainError(err, domain.ErrCodeSoldOut) {
			t.Fatalf("err = %v, want SOLD_OUT", err)
		}
		if err.Error() != "Event sold out" {
			t.Errorf("message = %q, want %q", err.Error(), "Event sold out")
		}
	})
}

// cpfFor derives a distinct valid CPF per subscriber by computing the mod-11
// check digits over a sequential 9-digit base.
func cpfFor(i int) string {
	base := fmt.Sprintf("%09d", 100000000+i)
	digits := make([]int, 0, 11)
	for _, r := range base {
		digits = append(digits, int(r-'0'))
	}
	digits = append(digits, cpfCheckDigit(digits, 10))
	digits = append(digits, cpfCheckDigit(digits, 11))
	var sb []byte
	for _, d := range digits {
		sb = append(sb, byte('0'+d))
	}
	s := string(sb)
	return s[0:3] + "." + s[3:6] + "." + s[6:9] + "-" + s[9:11]
}

func cpfCheckDigit(digits []int, startWeight int) int {
	sum := 0
	weight := startWeight
	for _, d := range digits {
		sum += d * weight
		weight--
	}
	if rem := sum % 11; rem >= 2 {
		return 11 - rem
	}
	return 0
}

// TestSubscribeConcurrent hammers one small event with parallel subscribers
// and checks that the spot count holds.
func TestSubscribeConcurrent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	partnerID := f.createPartner(t, ctx)

	const spots = 5
	const subscribers = 30
	eventID := f.createEvent(t, ctx, partnerID, spots)

	customerIDs := make([]string, subscribers)
	for i := range customerIDs {
		out, err := f.customers.Create(ctx, customer.CreateInput{
			Name:  fmt.Sprintf("Subscriber %02d", i),
			CPF:   cpfFor(i),
			Email: fmt.Sprintf("subscriber%02d@gmail.com", i),
		})
		if err != nil {
			t.Fatalf("create customer %d: %v", i, err)
		}
		customerIDs[i] = out.ID
	}

	var wg sync.WaitGroup
	errs := make([]error, subscribers)
	orderings := make([]int, subscribers)
	for i := 0; i < subscribers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := f.events.Subscribe(ctx, event.SubscribeInput{EventID: eventID, CustomerID: customerIDs[i]})
			errs[i] = err
			orderings[i] = out.Ordering
		}(i)
	}
	wg.Wait()

	var won int
	seen := make(map[int]bool)
	for i, err := range errs {
		switch {
		case err == nil:
			won++
			if orderings[i] < 1 || orderings[i] > spots {
				t.Errorf("ordering %d out of range", orderings[i])
			}
			if seen[orderings[i]] {
				t.Errorf("ordering %d assigned twice", orderings[i])
			}
			seen[orderings[i]] = true
		case domain.IsDomainError(err, domain.ErrCodeSoldOut):
		default:
			t.Errorf("subscriber %d: unexpected error %v", i, err)
		}
	}
	if won != spots {
		t.Errorf("winners = %d, want %d", won, spots)
	}

	got, err := f.events.GetByID(ctx, eventID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.RemainingSpots != 0 {
		t.Errorf("RemainingSpots = %d, want 0", got.RemainingSpots)
	}
}
