package storage

import (
	"context"
	"docbook-service/internal/app/models"
	"errors"
	"io"
	"testing"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	bucket string
	object string
	body   []byte
	opts   minio.PutObjectOptions
	err    error
}

func (f *fakePutter) PutObject(_ context.Context, bucketName, objectName string, reader io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.err != nil {
		return minio.UploadInfo{}, f.err
	}
	f.bucket = bucketName
	f.object = objectName
	f.opts = opts
	f.body, _ = io.ReadAll(reader)
	return minio.UploadInfo{Bucket: bucketName, Key: objectName}, nil
}

func TestMinioReceiptStorage_StoreReceipt(t *testing.T) {
	putter := &fakePutter{}
	storage := &minioReceiptStorage{client: putter, bucketName: "payment-receipts"}

	receipt := &models.PaymentReceipt{
		AppointmentID: "appt-1",
		Amount:        50,
		Method:        models.PaymentCreditCard,
		Attestation:   models.PaymentAttestation{Method: models.PaymentCreditCard, CardLast4: "4242"},
	}

	objectName, err := storage.StoreReceipt(context.Background(), receipt)
	require.NoError(t, err)
	assert.Equal(t, "receipts/appt-1.json", objectName)
	assert.Equal(t, "payment-receipts", putter.bucket)
	assert.Equal(t, "application/json", putter.opts.ContentType)

	var stored models.PaymentReceipt
	require.NoError(t, json.Unmarshal(putter.body, &stored))
	assert.Equal(t, "4242", stored.Attestation.CardLast4)
}

func TestMinioReceiptStorage_PutFails(t *testing.T) {
	storage := &minioReceiptStorage{client: &fakePutter{err: errors.New("bucket gone")}, bucketName: "payment-receipts"}

	_, err := storage.StoreReceipt(context.Background(), &models.PaymentReceipt{AppointmentID: "appt-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket gone")
}
