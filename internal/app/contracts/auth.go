package contracts

import "docbook-service/internal/app/models"

type TokenVerifier interface {
	VerifyToken(token string) (models.Actor, error)
}
