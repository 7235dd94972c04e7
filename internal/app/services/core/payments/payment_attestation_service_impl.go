package payments

import (
	"docbook-service/internal/app/contracts"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/dto/requests"
	"docbook-service/internal/pkg/exceptions"
	"docbook-service/internal/pkg/utils"
	"encoding/hex"
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/blake2b"
)

var errMissingPaymentDetails = errors.New("payment details are required for this method")

type paymentAttestationService struct {
	fingerprintKey []byte
}

var (
	paymentAttestationServiceInstance contracts.PaymentAttestationService
	oncePaymentAttestationService     sync.Once
)

func NewPaymentAttestationService(fingerprintKey string) contracts.PaymentAttestationService {
	oncePaymentAttestationService.Do(func() {
		paymentAttestationServiceInstance = newPaymentAttestationService(fingerprintKey)
	})
	return paymentAttestationServiceInstance
}

func newPaymentAttestationService(fingerprintKey string) *paymentAttestationService {
	key := []byte(fingerprintKey)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum512(key)
		key = sum[:]
	}
	return &paymentAttestationService{fingerprintKey: key}
}

// ParsePaymentMethod accepts the canonical method names as well as the
// spaced and snake_case spellings clients tend to send.
func ParsePaymentMethod(raw string) (models.PaymentMethod, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(normalized)

	switch normalized {
	case "creditcard", "card":
		return models.PaymentCreditCard, true
	case "upi":
		return models.PaymentUPI, true
	case "netbanking":
		return models.PaymentNetBanking, true
	case "wallet":
		return models.PaymentWallet, true
	case "cash":
		return models.PaymentCash, true
	}
	return "", false
}

func (s *paymentAttestationService) Attest(method string, details *requests.PaymentDetails) (*models.PaymentAttestation, error) {
	paymentMethod, ok := ParsePaymentMethod(method)
	if !ok {
		return nil, exceptions.ErrInvalidPaymentMethod(nil, method)
	}
	if paymentMethod == models.PaymentCash {
		return &models.PaymentAttestation{Method: models.PaymentCash}, nil
	}
	if details == nil {
		return nil, exceptions.ErrInvalidPaymentDetails(errMissingPaymentDetails, string(paymentMethod))
	}

	switch paymentMethod {
	case models.PaymentCreditCard:
		card := requests.CreditCardDetails{
			CardNumber: strings.TrimSpace(details.CardNumber),
			Expiry:     strings.TrimSpace(details.Expiry),
			CVV:        strings.TrimSpace(details.CVV),
		}
		if err := utils.ValidateStruct(card); err != nil {
			return nil, exceptions.ErrInvalidPaymentDetails(err, string(paymentMethod))
		}
		return &models.PaymentAttestation{
			Method:          paymentMethod,
			CardLast4:       lastN(card.CardNumber, 4),
			CardExpiry:      card.Expiry,
			CardFingerprint: s.fingerprint(card.CardNumber),
		}, nil

	case models.PaymentUPI:
		upi := requests.UPIDetails{UpiID: strings.TrimSpace(details.UpiID)}
		if err := utils.ValidateStruct(upi); err != nil {
			return nil, exceptions.ErrInvalidPaymentDetails(err, string(paymentMethod))
		}
		return &models.PaymentAttestation{
			Method: paymentMethod,
			UpiID:  upi.UpiID,
		}, nil

	case models.PaymentNetBanking:
		netBanking := requests.NetBankingDetails{
			Bank:               strings.TrimSpace(details.Bank),
			AccountNumber:      strings.TrimSpace(details.AccountNumber),
			NetBankingUserID:   strings.TrimSpace(details.NetBankingUserID),
			NetBankingPassword: details.NetBankingPassword,
			TransactionPin:     strings.TrimSpace(details.TransactionPin),
		}
		if err := utils.ValidateStruct(netBanking); err != nil {
			return nil, exceptions.ErrInvalidPaymentDetails(err, string(paymentMethod))
		}
		return &models.PaymentAttestation{
			Method:             paymentMethod,
			Bank:               netBanking.Bank,
			AccountLast4:       lastN(netBanking.AccountNumber, 4),
			AccountFingerprint: s.fingerprint(netBanking.Bank + ":" + netBanking.AccountNumber),
		}, nil

	case models.PaymentWallet:
		wallet := requests.WalletDetails{
			Wallet:       strings.TrimSpace(details.Wallet),
			WalletMobile: strings.TrimSpace(details.WalletMobile),
		}
		if err := utils.ValidateStruct(wallet); err != nil {
			return nil, exceptions.ErrInvalidPaymentDetails(err, string(paymentMethod))
		}
		return &models.PaymentAttestation{
			Method:       paymentMethod,
			Wallet:       wallet.Wallet,
			WalletMobile: maskAllButLast(wallet.WalletMobile, 4),
		}, nil
	}

	return nil, exceptions.ErrInvalidPaymentMethod(nil, method)
}

// fingerprint lets two payments by the same instrument be matched without
// keeping the instrument number.
func (s *paymentAttestationService) fingerprint(value string) string {
	hasher, err := blake2b.New256(s.fingerprintKey)
	if err != nil {
		return ""
	}
	hasher.Write([]byte(value))
	return hex.EncodeToString(hasher.Sum(nil))
}

func lastN(value string, n int) string {
	if len(value) <= n {
		return value
	}
	return value[len(value)-n:]
}

func maskAllButLast(value string, n int) string {
	if len(value) <= n {
		return value
	}
	return strings.Repeat("*", len(value)-n) + value[len(value)-n:]
}
