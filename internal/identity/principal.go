package identity

import "github.com/hairsol/booking-engine/internal/httperr"

type UserType string

const (
	UserTypeClient       UserType = "client"
	UserTypeProfessional UserType = "professional"
	UserTypeAdmin        UserType = "admin"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeClient, UserTypeProfessional, UserTypeAdmin:
		return true
	}
	return false
}

// Principal is the authenticated caller as asserted by the identity provider.
type Principal struct {
	UserID   uint
	UserType UserType
}

func (p Principal) RequireClient() error {
	if p.UserType != UserTypeClient {
		return httperr.Forbidden(httperr.CodeClientOnly, "Only clients can book appointments.")
	}
	return nil
}

func (p Principal) RequireProfessional() error {
	if p.UserType != UserTypeProfessional {
		return httperr.Forbidden(httperr.CodeProfessionalOnly, "Only service providers can manage availability.")
	}
	return nil
}
