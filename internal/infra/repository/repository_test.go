package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hairsol/booking-engine/internal/audit"
	domain "github.com/hairsol/booking-engine/internal/domain/appointment"
	"github.com/hairsol/booking-engine/internal/httperr"
	"github.com/hairsol/booking-engine/internal/identity"
	"github.com/hairsol/booking-engine/internal/models"
	"github.com/hairsol/booking-engine/internal/timezone"
	ucAvailability "github.com/hairsol/booking-engine/internal/usecase/availability"
)

func TestProviderDayKeysAreSortedAndUnique(t *testing.T) {
	keys := providerDayKeys(7, []string{"2025-06-03", "2025-06-01", "2025-06-03"})
	want := []string{"provider-day:7:2025-06-01", "provider-day:7:2025-06-03"}

	if len(keys) != len(want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, keys)
		}
	}
}

// openTestDB connects to BOOKING_TEST_DATABASE_URL; the integration tests are
// skipped without it.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("BOOKING_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("BOOKING_TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.ServiceProvider{},
		&models.Service{},
		&models.AvailabilityWindow{},
		&models.Appointment{},
		&models.AppointmentCheckout{},
		&models.OutboxEvent{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_appointments_slot
		ON appointments (service_provider_id, service_id, date, time)
		WHERE status <> 'cancelled'`).Error; err != nil {
		t.Fatalf("slot index: %v", err)
	}
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.ServiceProvider, models.Service, models.User) {
	t.Helper()

	suffix := time.Now().UnixNano()
	client := models.User{Email: fmt.Sprintf("client-%d@example.com", suffix), UserType: "client"}
	pro := models.User{Email: fmt.Sprintf("pro-%d@example.com", suffix), UserType: "professional"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	if err := db.Create(&pro).Error; err != nil {
		t.Fatalf("pro: %v", err)
	}

	provider := models.ServiceProvider{UserID: pro.ID, BusinessName: fmt.Sprintf("Shop %d", suffix)}
	if err := db.Create(&provider).Error; err != nil {
		t.Fatalf("provider: %v", err)
	}
	service := models.Service{ServiceProviderID: provider.ID, ServiceName: "Skin Fade", Price: 25, DurationMinutes: 30}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("service: %v", err)
	}
	return provider, service, client
}

func TestSlotIndexRejectsConcurrentBookings(t *testing.T) {
	db := openTestDB(t)
	provider, service, client := seedCatalog(t, db)
	repo := NewAppointmentGormRepository(db)

	const attempts = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		conflict int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ap := &models.Appointment{
				ClientID:          client.ID,
				ServiceProviderID: provider.ID,
				ServiceID:         service.ID,
				Date:              "2030-01-01",
				Time:              "09:00:00",
				Status:            string(domain.StatusBooked),
			}
			// no advisory lock here: the unique index alone must hold
			err := repo.CreateBooking(context.Background(), ap, &models.AppointmentCheckout{TotalPrice: 25})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case httperr.IsBusiness(err, httperr.CodeAlreadyBooked):
				conflict++
			default:
				t.Errorf("unexpected error %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || conflict != attempts-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", attempts-1, ok, conflict)
	}
}

func TestAdvanceStatusCompareAndSet(t *testing.T) {
	db := openTestDB(t)
	provider, service, client := seedCatalog(t, db)
	repo := NewAppointmentGormRepository(db)
	ctx := context.Background()

	ap := &models.Appointment{
		ClientID:          client.ID,
		ServiceProviderID: provider.ID,
		ServiceID:         service.ID,
		Date:              "2030-01-02",
		Time:              "10:00:00",
		Status:            string(domain.StatusBooked),
	}
	if err := repo.CreateBooking(ctx, ap, &models.AppointmentCheckout{TotalPrice: 25}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	moved, err := repo.AdvanceStatus(ctx, ap.ID, domain.StatusBooked, domain.StatusWaiting, domain.NotesWaiting)
	if err != nil || !moved {
		t.Fatalf("first advance: %v %v", moved, err)
	}
	moved, err = repo.AdvanceStatus(ctx, ap.ID, domain.StatusBooked, domain.StatusWaiting, domain.NotesWaiting)
	if err != nil || moved {
		t.Fatalf("second advance must lose: %v %v", moved, err)
	}

	got, err := repo.GetAppointment(ctx, ap.ID)
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}
	if got.Checkout == nil || got.Service.ID != service.ID {
		t.Fatalf("expected preloaded associations, got %+v", got)
	}
}

func TestConcurrentWindowDeclarationsSerialize(t *testing.T) {
	db := openTestDB(t)
	provider, _, _ := seedCatalog(t, db)

	dispatcher := audit.NewDispatcher(audit.New(db), zap.NewNop())
	t.Cleanup(dispatcher.Close)

	clock := timezone.NewFixedClock(time.Date(2029, 12, 31, 8, 0, 0, 0, time.UTC))
	declare := ucAvailability.NewDeclareAvailability(
		NewCatalogGormRepository(db),
		NewAvailabilityGormRepository(db),
		dispatcher,
		clock,
	)
	pro := identity.Principal{UserID: provider.UserID, UserType: identity.UserTypeProfessional}

	inputs := []ucAvailability.WindowInput{
		{Date: "2030-01-01", StartTime: "09:00:00", EndTime: "11:00:00"},
		{Date: "2030-01-01", StartTime: "10:00:00", EndTime: "12:00:00"},
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		overlaps int
	)
	for _, in := range inputs {
		wg.Add(1)
		go func(in ucAvailability.WindowInput) {
			defer wg.Done()
			_, err := declare.Execute(context.Background(), pro, in)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case httperr.IsBusiness(err, httperr.CodeOverlappingWindow):
				overlaps++
			default:
				t.Errorf("unexpected error %v", err)
			}
		}(in)
	}
	wg.Wait()

	if ok != 1 || overlaps != 1 {
		t.Fatalf("expected 1 success and 1 overlap, got %d and %d", ok, overlaps)
	}

	var stored int64
	if err := db.Model(&models.AvailabilityWindow{}).
		Where("service_provider_id = ? AND date = ?", provider.ID, "2030-01-01").
		Count(&stored).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if stored != 1 {
		t.Fatalf("expected one stored window, got %d", stored)
	}
}
