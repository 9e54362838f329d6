package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hairsol/booking-engine/internal/audit"
	domain "github.com/hairsol/booking-engine/internal/domain/appointment"
	"github.com/hairsol/booking-engine/internal/dto"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/identity"
	"github.com/hairsol/booking-engine/internal/infra/memory"
	"github.com/hairsol/booking-engine/internal/models"
	"github.com/hairsol/booking-engine/internal/timezone"
)

type fixture struct {
	store    *memory.Store
	clock    *timezone.FixedClock
	provider models.ServiceProvider
	service  models.Service

	client identity.Principal
	pro    identity.Principal

	book       *BookAppointment
	reschedule *RescheduleAppointment
	cancel     *CancelAppointment
	queries    *Queries
	slots      *GetOpenSlots
	refresher  *Refresher
}

// newFixture seeds one provider with a 30 minute service and a
// 2025-06-01 09:00-12:00 window; the clock starts at 07:00 that day.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := memory.New()
	proUser := s.AddUser(models.User{Email: "pro@example.com", UserType: string(identity.UserTypeProfessional)})
	clientUser := s.AddUser(models.User{Email: "client@example.com", UserType: string(identity.UserTypeClient)})
	p := s.AddProvider(models.ServiceProvider{UserID: proUser.ID, BusinessName: "Fade Factory"})
	svc := s.AddService(models.Service{ServiceProviderID: p.ID, ServiceName: "Skin Fade", Price: 25, DurationMinutes: 30})

	ctx := context.Background()
	if err := s.Availability().CreateWindow(ctx, &models.AvailabilityWindow{
		ServiceProviderID: p.ID,
		Date:              "2025-06-01",
		StartTime:         "09:00:00",
		EndTime:           "12:00:00",
	}); err != nil {
		t.Fatalf("seed window: %v", err)
	}

	clock := timezone.NewFixedClock(time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC))
	d := audit.NewDispatcher(s, zap.NewNop())
	t.Cleanup(d.Close)

	repo := s.Appointments()
	refresher := NewRefresher(repo, clock, zap.NewNop())

	return &fixture{
		store:      s,
		clock:      clock,
		provider:   p,
		service:    svc,
		client:     identity.Principal{UserID: clientUser.ID, UserType: identity.UserTypeClient},
		pro:        identity.Principal{UserID: proUser.ID, UserType: identity.UserTypeProfessional},
		book:       NewBookAppointment(s, repo, d, clock),
		reschedule: NewRescheduleAppointment(repo, refresher, d, clock),
		cancel:     NewCancelAppointment(repo, d),
		queries:    NewQueries(s, repo, refresher),
		slots:      NewGetOpenSlots(s, repo, clock),
		refresher:  refresher,
	}
}

func (f *fixture) input(clock string) BookAppointmentInput {
	return BookAppointmentInput{
		Date:            "2025-06-01",
		Time:            clock,
		ServiceProvider: "fade factory",
		Service:         "skin fade",
	}
}

func (f *fixture) mustBook(t *testing.T, clock string) *models.Appointment {
	t.Helper()
	ap, err := f.book.Execute(context.Background(), f.client, f.input(clock))
	if err != nil {
		t.Fatalf("book %s: %v", clock, err)
	}
	return ap
}

func strPtr(s string) *string { return &s }

func TestBookAppointment(t *testing.T) {
	f := newFixture(t)

	ap := f.mustBook(t, "09:00:00")
	if ap.Status != string(domain.StatusBooked) {
		t.Fatalf("expected booked, got %s", ap.Status)
	}
	if ap.ServiceProvider.BusinessName != "Fade Factory" || ap.Service.ServiceName != "Skin Fade" {
		t.Fatalf("expected nested provider and service, got %+v", ap)
	}

	checkout, ok := f.store.Checkout(ap.ID)
	if !ok {
		t.Fatal("expected checkout")
	}
	if checkout.TotalPrice != 25 || checkout.PaymentStatus != models.PaymentStatusPending || checkout.PaymentMethod != models.PaymentMethodCash {
		t.Fatalf("unexpected checkout %+v", checkout)
	}

	events := f.store.Events()
	if len(events) != 1 || events[0].EventType != "appointment.booked.v1" {
		t.Fatalf("unexpected outbox %+v", events)
	}

	// ends exactly at the window end
	f.mustBook(t, "11:30:00")
}

func TestBookAppointmentRejections(t *testing.T) {
	cases := []struct {
		name string
		who  func(f *fixture) identity.Principal
		in   func(f *fixture) BookAppointmentInput
		code string
	}{
		{
			name: "professional caller",
			who:  func(f *fixture) identity.Principal { return f.pro },
			code: httperr.CodeClientOnly,
		},
		{
			name: "missing fields",
			in: func(f *fixture) BookAppointmentInput {
				in := f.input("10:00:00")
				in.Service = " "
				return in
			},
			code: httperr.CodeMissingFields,
		},
		{
			name: "unknown provider",
			in: func(f *fixture) BookAppointmentInput {
				in := f.input("10:00:00")
				in.ServiceProvider = "Nobody"
				return in
			},
			code: httperr.CodeProviderNotFound,
		},
		{
			name: "unknown service",
			in: func(f *fixture) BookAppointmentInput {
				in := f.input("10:00:00")
				in.Service = "Perm"
				return in
			},
			code: httperr.CodeServiceNotFound,
		},
		{
			name: "bad time",
			in:   func(f *fixture) BookAppointmentInput { return f.input("10am") },
			code: httperr.CodeInvalidFormat,
		},
		{
			name: "past date",
			in: func(f *fixture) BookAppointmentInput {
				in := f.input("10:00:00")
				in.Date = "2025-01-01"
				return in
			},
			code: httperr.CodePastDate,
		},
		{
			name: "past time",
			in:   func(f *fixture) BookAppointmentInput { return f.input("06:00:00") },
			code: httperr.CodePastTime,
		},
		{
			name: "outside window",
			in:   func(f *fixture) BookAppointmentInput { return f.input("13:00:00") },
			code: httperr.CodeNotAvailable,
		},
		{
			name: "runs past window end",
			in:   func(f *fixture) BookAppointmentInput { return f.input("11:45:00") },
			code: httperr.CodeInsufficientTime,
		},
		{
			name: "slot taken",
			in:   func(f *fixture) BookAppointmentInput { return f.input("09:00:00") },
			code: httperr.CodeAlreadyBooked,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.mustBook(t, "09:00:00")

			who := f.client
			if tc.who != nil {
				who = tc.who(f)
			}
			in := f.input("10:00:00")
			if tc.in != nil {
				in = tc.in(f)
			}

			before := len(f.store.Events())
			_, err := f.book.Execute(context.Background(), who, in)
			if !httperr.IsBusiness(err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
			if len(f.store.Events()) != before {
				t.Fatal("rejected booking must not enqueue events")
			}
		})
	}
}

func TestConcurrentBookingExactlyOneWins(t *testing.T) {
	f := newFixture(t)

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.book.Execute(context.Background(), f.client, f.input("10:00:00"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case httperr.IsBusiness(err, httperr.CodeAlreadyBooked):
				conflicts++
			default:
				t.Errorf("unexpected error %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 || conflicts != attempts-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", attempts-1, succeeded, conflicts)
	}
}

func TestLifecycleAdvancesOnRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap := f.mustBook(t, "10:00:00")

	f.clock.Set(time.Date(2025, 6, 1, 9, 13, 0, 0, time.UTC)) // start - 47m
	got, err := f.queries.ClientGet(ctx, f.client, ap.ID)
	if err != nil {
		t.Fatalf("ClientGet: %v", err)
	}
	if got.Status != string(domain.StatusWaiting) || got.Notes != domain.NotesWaiting {
		t.Fatalf("expected on-waiting, got %s %q", got.Status, got.Notes)
	}

	f.clock.Set(time.Date(2025, 6, 1, 10, 1, 0, 0, time.UTC)) // start + 1m
	got, err = f.queries.ClientGet(ctx, f.client, ap.ID)
	if err != nil {
		t.Fatalf("ClientGet: %v", err)
	}
	if got.Status != string(domain.StatusProcess) || got.Notes != domain.NotesProcessing(30) {
		t.Fatalf("expected on-process, got %s %q", got.Status, got.Notes)
	}

	f.clock.Set(time.Date(2025, 6, 1, 10, 32, 0, 0, time.UTC))
	page, err := f.queries.ClientHistory(ctx, f.client, dto.FirstPage())
	if err != nil {
		t.Fatalf("ClientHistory: %v", err)
	}
	if page.Count != 1 || page.Results[0].Status != string(domain.StatusFinished) {
		t.Fatalf("expected finished appointment in history, got %+v", page)
	}
}

func TestRefreshLosesRaceGracefully(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap := f.mustBook(t, "10:00:00")
	stale := *ap

	f.clock.Set(time.Date(2025, 6, 1, 9, 13, 0, 0, time.UTC))
	if err := f.refresher.Refresh(ctx, ap); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	// a second reader still holding the booked copy must not re-apply the move
	if err := f.refresher.Refresh(ctx, &stale); err != nil {
		t.Fatalf("stale refresh: %v", err)
	}
	if stale.Status != string(domain.StatusWaiting) {
		t.Fatalf("expected reload to on-waiting, got %s", stale.Status)
	}
}

func TestRescheduleAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap := f.mustBook(t, "09:00:00")
	other := f.mustBook(t, "10:00:00")

	if _, err := f.reschedule.Execute(ctx, f.client, ap.ID, RescheduleInput{}); !httperr.IsBusiness(err, httperr.CodeMissingFields) {
		t.Fatalf("expected MissingFields, got %v", err)
	}
	if _, err := f.reschedule.Execute(ctx, f.client, ap.ID, RescheduleInput{Time: strPtr("10:00:00")}); !httperr.IsBusiness(err, httperr.CodeAlreadyBooked) {
		t.Fatalf("expected AlreadyBooked, got %v", err)
	}
	if _, err := f.reschedule.Execute(ctx, f.client, ap.ID, RescheduleInput{Time: strPtr("11:45:00")}); !httperr.IsBusiness(err, httperr.CodeInsufficientTime) {
		t.Fatalf("expected InsufficientTime, got %v", err)
	}

	// keeping its own slot is not a conflict with itself
	if _, err := f.reschedule.Execute(ctx, f.client, ap.ID, RescheduleInput{Time: strPtr("09:00:00")}); err != nil {
		t.Fatalf("same slot: %v", err)
	}

	moved, err := f.reschedule.Execute(ctx, f.client, ap.ID, RescheduleInput{Time: strPtr("11:00:00")})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if moved.Time != "11:00:00" || moved.Date != "2025-06-01" {
		t.Fatalf("unexpected schedule %s %s", moved.Date, moved.Time)
	}

	// the freed slot is bookable again
	f.mustBook(t, "09:00:00")

	stranger := identity.Principal{UserID: 999, UserType: identity.UserTypeClient}
	if _, err := f.reschedule.Execute(ctx, stranger, other.ID, RescheduleInput{Time: strPtr("11:30:00")}); !httperr.IsBusiness(err, httperr.CodeNotOwner) {
		t.Fatalf("expected NotOwner, got %v", err)
	}
	if _, err := f.reschedule.Execute(ctx, f.client, 12345, RescheduleInput{Time: strPtr("11:30:00")}); !httperr.IsBusiness(err, httperr.CodeAppointmentNotFound) {
		t.Fatalf("expected AppointmentNotFound, got %v", err)
	}
}

func TestRescheduleRequiresBookedStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap := f.mustBook(t, "10:00:00")
	f.clock.Set(time.Date(2025, 6, 1, 9, 20, 0, 0, time.UTC))

	_, err := f.reschedule.Execute(ctx, f.client, ap.ID, RescheduleInput{Time: strPtr("11:00:00")})
	if !httperr.IsBusiness(err, httperr.CodeAppointmentInProgress) {
		t.Fatalf("expected AppointmentInProgress, got %v", err)
	}
}

func TestCancelAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap := f.mustBook(t, "09:00:00")

	stranger := identity.Principal{UserID: 999, UserType: identity.UserTypeClient}
	if err := f.cancel.Execute(ctx, stranger, ap.ID); !httperr.IsBusiness(err, httperr.CodeNotOwner) {
		t.Fatalf("expected NotOwner, got %v", err)
	}

	if err := f.cancel.Execute(ctx, f.client, ap.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, ok := f.store.Checkout(ap.ID); ok {
		t.Fatal("checkout must be removed with the appointment")
	}
	if err := f.cancel.Execute(ctx, f.client, ap.ID); !httperr.IsBusiness(err, httperr.CodeAppointmentNotFound) {
		t.Fatalf("expected AppointmentNotFound, got %v", err)
	}

	// the slot is free again
	f.mustBook(t, "09:00:00")
}

func TestClientBuckets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mustBook(t, "09:00:00")
	f.mustBook(t, "11:00:00")

	// 09:00 is in process, 11:00 is still booked
	f.clock.Set(time.Date(2025, 6, 1, 9, 5, 0, 0, time.UTC))

	current, err := f.queries.ClientCurrent(ctx, f.client, dto.FirstPage())
	if err != nil {
		t.Fatalf("ClientCurrent: %v", err)
	}
	if current.Count != 1 || current.Results[0].Time != "11:00:00" {
		t.Fatalf("unexpected current %+v", current)
	}

	active, err := f.queries.ClientActive(ctx, f.client, dto.FirstPage())
	if err != nil {
		t.Fatalf("ClientActive: %v", err)
	}
	if active.Count != 2 || active.Results[0].Time != "11:00:00" {
		t.Fatalf("expected both ordered by -date, got %+v", active)
	}

	if _, err := f.queries.ClientActive(ctx, f.pro, dto.FirstPage()); !httperr.IsBusiness(err, httperr.CodeClientOnly) {
		t.Fatalf("expected ClientOnly, got %v", err)
	}
}

func TestProviderQueries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.mustBook(t, "09:00:00")
	f.mustBook(t, "11:00:00")

	f.clock.Set(time.Date(2025, 6, 1, 9, 5, 0, 0, time.UTC))

	all, err := f.queries.ProviderAll(ctx, f.pro, dto.FirstPage())
	if err != nil {
		t.Fatalf("ProviderAll: %v", err)
	}
	if all.Count != 2 {
		t.Fatalf("expected 2 appointments, got %d", all.Count)
	}

	upcoming, err := f.queries.ProviderUpcoming(ctx, f.pro, dto.FirstPage())
	if err != nil {
		t.Fatalf("ProviderUpcoming: %v", err)
	}
	if upcoming.Count != 1 || upcoming.Results[0].ID != first.ID {
		t.Fatalf("unexpected upcoming %+v", upcoming)
	}

	byDate, err := f.queries.ProviderByDate(ctx, f.pro, "2025-06-02", dto.FirstPage())
	if err != nil {
		t.Fatalf("ProviderByDate: %v", err)
	}
	if byDate.Count != 0 {
		t.Fatalf("expected no appointments on 2025-06-02, got %d", byDate.Count)
	}
	if _, err := f.queries.ProviderByDate(ctx, f.pro, "06/01/2025", dto.FirstPage()); !httperr.IsBusiness(err, httperr.CodeInvalidFormat) {
		t.Fatalf("expected InvalidFormat, got %v", err)
	}

	got, err := f.queries.ProviderGet(ctx, f.pro, first.ID)
	if err != nil {
		t.Fatalf("ProviderGet: %v", err)
	}
	if got.Status != string(domain.StatusProcess) || got.Notes != domain.NotesProcessing(30) {
		t.Fatalf("expected on-process with recomputed notes, got %s %q", got.Status, got.Notes)
	}

	f.clock.Set(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	past, err := f.queries.ProviderPast(ctx, f.pro, dto.FirstPage())
	if err != nil {
		t.Fatalf("ProviderPast: %v", err)
	}
	if past.Count != 2 {
		t.Fatalf("expected 2 finished appointments, got %d", past.Count)
	}
}

func TestOpenSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mustBook(t, "09:30:00")
	f.clock.Set(time.Date(2025, 6, 1, 10, 10, 0, 0, time.UTC))

	slots, err := f.slots.Execute(ctx, OpenSlotsInput{ServiceProvider: "Fade Factory", Service: "Skin Fade", Date: "2025-06-01"})
	if err != nil {
		t.Fatalf("open slots: %v", err)
	}

	want := []string{"10:30:00", "11:00:00", "11:30:00"}
	if len(slots) != len(want) {
		t.Fatalf("expected %v, got %+v", want, slots)
	}
	for i, s := range slots {
		if s.Start != want[i] {
			t.Fatalf("slot %d: expected %s, got %s", i, want[i], s.Start)
		}
	}
}
