package appointment

import "github.com/hairsol/booking-engine/internal/models"

// ===============================
// Domain Constructors
// ===============================

func NewAppointment(
	clientID uint,
	provider *models.ServiceProvider,
	service *models.Service,
	date string,
	clock string,
) *models.Appointment {
	return &models.Appointment{
		ClientID:          clientID,
		ServiceProviderID: provider.ID,
		ServiceProvider:   *provider,
		ServiceID:         service.ID,
		Service:           *service,
		Date:              date,
		Time:              clock,
		Status:            string(InitialStatus()),
	}
}

// NewCheckout prices the booking at the service price of the moment; later
// price changes never touch existing checkouts.
func NewCheckout(service *models.Service) *models.AppointmentCheckout {
	return &models.AppointmentCheckout{
		TotalPrice:    service.Price,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: models.PaymentMethodCash,
	}
}
