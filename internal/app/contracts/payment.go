package contracts

import (
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/dto/requests"
)

type PaymentAttestationService interface {
	// Attest validates the method specific shape of details and returns the
	// redacted attestation that may be persisted.
	Attest(method string, details *requests.PaymentDetails) (*models.PaymentAttestation, error)
}
