package contracts

import (
	"context"
	"docbook-service/internal/app/models"
)

type ReceiptStorage interface {
	StoreReceipt(ctx context.Context, receipt *models.PaymentReceipt) (string, error)
}
