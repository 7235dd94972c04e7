package models

type Role string

const (
	RolePatient Role = "Patient"
	RoleDoctor  Role = "Doctor"
	RoleAdmin   Role = "Admin"
	RolePayment Role = "Payment"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin, RolePayment:
		return true
	}
	return false
}

// Actor is the verified identity behind a request.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func (a Actor) Is(role Role) bool {
	return a.Role == role
}
