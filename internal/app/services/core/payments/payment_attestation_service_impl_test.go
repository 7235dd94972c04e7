package payments

import (
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/dto/requests"
	"docbook-service/internal/pkg/exceptions"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	tests := map[string]models.PaymentMethod{
		"CreditCard":  models.PaymentCreditCard,
		"Credit Card": models.PaymentCreditCard,
		"credit_card": models.PaymentCreditCard,
		"UPI":         models.PaymentUPI,
		"Net Banking": models.PaymentNetBanking,
		"NetBanking":  models.PaymentNetBanking,
		"wallet":      models.PaymentWallet,
		"Cash":        models.PaymentCash,
	}
	for raw, want := range tests {
		got, ok := ParsePaymentMethod(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	_, ok := ParsePaymentMethod("Bitcoin")
	assert.False(t, ok)
}

func TestAttest_CreditCardRedactsSecrets(t *testing.T) {
	service := newPaymentAttestationService("test-key")

	attestation, err := service.Attest("CreditCard", &requests.PaymentDetails{
		CardNumber: "4111111111111111",
		Expiry:     "12/27",
		CVV:        "123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentCreditCard, attestation.Method)
	assert.Equal(t, "1111", attestation.CardLast4)
	assert.Equal(t, "12/27", attestation.CardExpiry)
	assert.Len(t, attestation.CardFingerprint, 64)

	encoded, err := json.Marshal(attestation)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "4111111111111111")
	assert.NotContains(t, strings.ToLower(string(encoded)), "cvv")
	assert.NotContains(t, string(encoded), "\"123\"")
}

func TestAttest_FingerprintIsStableAndKeyed(t *testing.T) {
	details := &requests.PaymentDetails{CardNumber: "4111111111111111", Expiry: "12/27", CVV: "123"}

	first, err := newPaymentAttestationService("key-a").Attest("CreditCard", details)
	require.NoError(t, err)
	second, err := newPaymentAttestationService("key-a").Attest("CreditCard", details)
	require.NoError(t, err)
	other, err := newPaymentAttestationService("key-b").Attest("CreditCard", details)
	require.NoError(t, err)

	assert.Equal(t, first.CardFingerprint, second.CardFingerprint)
	assert.NotEqual(t, first.CardFingerprint, other.CardFingerprint)

	long, err := newPaymentAttestationService(strings.Repeat("k", 100)).Attest("CreditCard", details)
	require.NoError(t, err)
	assert.Len(t, long.CardFingerprint, 64)
}

func TestAttest_NetBankingDropsCredentials(t *testing.T) {
	service := newPaymentAttestationService("test-key")

	attestation, err := service.Attest("Net Banking", &requests.PaymentDetails{
		Bank:               "HDFC",
		AccountNumber:      "1234567890",
		NetBankingUserID:   "jane.doe",
		NetBankingPassword: "hunter2",
		TransactionPin:     "654321",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentNetBanking, attestation.Method)
	assert.Equal(t, "HDFC", attestation.Bank)
	assert.Equal(t, "7890", attestation.AccountLast4)
	assert.NotEmpty(t, attestation.AccountFingerprint)

	encoded, err := json.Marshal(attestation)
	require.NoError(t, err)
	for _, secret := range []string{"jane.doe", "hunter2", "654321", "1234567890"} {
		assert.NotContains(t, string(encoded), secret)
	}
}

func TestAttest_WalletAndUPI(t *testing.T) {
	service := newPaymentAttestationService("")

	wallet, err := service.Attest("Wallet", &requests.PaymentDetails{Wallet: "Paytm", WalletMobile: "9876543210"})
	require.NoError(t, err)
	assert.Equal(t, "Paytm", wallet.Wallet)
	assert.Equal(t, "******3210", wallet.WalletMobile)

	upi, err := service.Attest("UPI", &requests.PaymentDetails{UpiID: "jane@okbank"})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentUPI, upi.Method)
	assert.Equal(t, "jane@okbank", upi.UpiID)
}

func TestAttest_CashNeedsNoDetails(t *testing.T) {
	attestation, err := newPaymentAttestationService("").Attest("Cash", nil)
	require.NoError(t, err)
	assert.Equal(t, &models.PaymentAttestation{Method: models.PaymentCash}, attestation)
}

func TestAttest_Rejections(t *testing.T) {
	service := newPaymentAttestationService("test-key")

	tests := []struct {
		name    string
		method  string
		details *requests.PaymentDetails
	}{
		{"unknown method", "Bitcoin", &requests.PaymentDetails{}},
		{"card without details", "CreditCard", nil},
		{"short card number", "CreditCard", &requests.PaymentDetails{CardNumber: "411111111111", Expiry: "12/27", CVV: "123"}},
		{"bad expiry", "CreditCard", &requests.PaymentDetails{CardNumber: "4111111111111111", Expiry: "1227", CVV: "123"}},
		{"expiry month thirteen", "CreditCard", &requests.PaymentDetails{CardNumber: "4111111111111111", Expiry: "13/27", CVV: "123"}},
		{"expiry month zero", "CreditCard", &requests.PaymentDetails{CardNumber: "4111111111111111", Expiry: "00/27", CVV: "123"}},
		{"expiry month ninety nine", "CreditCard", &requests.PaymentDetails{CardNumber: "4111111111111111", Expiry: "99/99", CVV: "123"}},
		{"four digit cvv", "CreditCard", &requests.PaymentDetails{CardNumber: "4111111111111111", Expiry: "12/27", CVV: "1234"}},
		{"empty upi", "UPI", &requests.PaymentDetails{UpiID: "  "}},
		{"unknown bank", "NetBanking", &requests.PaymentDetails{Bank: "Chase", AccountNumber: "1234567", NetBankingUserID: "u", NetBankingPassword: "p", TransactionPin: "123456"}},
		{"short account", "NetBanking", &requests.PaymentDetails{Bank: "SBI", AccountNumber: "123", NetBankingUserID: "u", NetBankingPassword: "p", TransactionPin: "123456"}},
		{"short pin", "NetBanking", &requests.PaymentDetails{Bank: "SBI", AccountNumber: "1234567", NetBankingUserID: "u", NetBankingPassword: "p", TransactionPin: "1234"}},
		{"unknown wallet", "Wallet", &requests.PaymentDetails{Wallet: "Venmo", WalletMobile: "9876543210"}},
		{"short mobile", "Wallet", &requests.PaymentDetails{Wallet: "PhonePe", WalletMobile: "98765"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attestation, err := service.Attest(tt.method, tt.details)
			require.Error(t, err)
			assert.Nil(t, attestation)
			assert.True(t, exceptions.Is(err, exceptions.KindInvalidPayment))
		})
	}
}

func TestAttest_RejectionNamesField(t *testing.T) {
	_, err := newPaymentAttestationService("").Attest("CreditCard", &requests.PaymentDetails{
		CardNumber: "4111111111111111",
		Expiry:     "12/27",
		CVV:        "12",
	})
	require.Error(t, err)

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.True(t, strings.HasPrefix(customErr.ClientMessage, "Invalid payment details: cvv"))
}
