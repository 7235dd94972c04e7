package storage

import (
	"bytes"
	"context"
	"docbook-service/internal/app/contracts"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/exceptions"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
)

type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioReceiptStorage struct {
	client     objectPutter
	bucketName string
}

func NewMinioReceiptStorage(minioClient *minio.Client, bucketName string) contracts.ReceiptStorage {
	return &minioReceiptStorage{
		client:     minioClient,
		bucketName: bucketName,
	}
}

// StoreReceipt writes the receipt as JSON and returns the object name.
func (m *minioReceiptStorage) StoreReceipt(ctx context.Context, receipt *models.PaymentReceipt) (string, error) {
	body, err := json.Marshal(receipt)
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	objectName := fmt.Sprintf(constvars.ReceiptObjectFormat, receipt.AppointmentID)
	_, err = m.client.PutObject(
		ctx,
		m.bucketName,
		objectName,
		bytes.NewReader(body),
		int64(len(body)),
		minio.PutObjectOptions{
			ContentType: constvars.MIMEApplicationJSON,
			UserMetadata: map[string]string{
				"appointment-id": receipt.AppointmentID,
				"payment-method": string(receipt.Method),
			},
		},
	)
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, m.bucketName)
	}
	return objectName, nil
}

type noopReceiptStorage struct{}

// NewNoopReceiptStorage is used when receipt archiving is disabled.
func NewNoopReceiptStorage() contracts.ReceiptStorage {
	return noopReceiptStorage{}
}

func (noopReceiptStorage) StoreReceipt(context.Context, *models.PaymentReceipt) (string, error) {
	return "", nil
}
