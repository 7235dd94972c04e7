package models

import "time"

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "CreditCard"
	PaymentUPI        PaymentMethod = "UPI"
	PaymentNetBanking PaymentMethod = "NetBanking"
	PaymentWallet     PaymentMethod = "Wallet"
	PaymentCash       PaymentMethod = "Cash"
)

// PaymentAttestation is the redacted record of the instrument that paid for
// an appointment. Secrets (CVV, passwords, PINs, full numbers) never reach it.
type PaymentAttestation struct {
	Method             PaymentMethod `json:"method" bson:"method"`
	CardLast4          string        `json:"cardLast4,omitempty" bson:"cardLast4,omitempty"`
	CardExpiry         string        `json:"cardExpiry,omitempty" bson:"cardExpiry,omitempty"`
	CardFingerprint    string        `json:"cardFingerprint,omitempty" bson:"cardFingerprint,omitempty"`
	UpiID              string        `json:"upiId,omitempty" bson:"upiId,omitempty"`
	Bank               string        `json:"bank,omitempty" bson:"bank,omitempty"`
	AccountLast4       string        `json:"accountLast4,omitempty" bson:"accountLast4,omitempty"`
	AccountFingerprint string        `json:"accountFingerprint,omitempty" bson:"accountFingerprint,omitempty"`
	Wallet             string        `json:"wallet,omitempty" bson:"wallet,omitempty"`
	WalletMobile       string        `json:"walletMobile,omitempty" bson:"walletMobile,omitempty"`
}

// PaymentReceipt is archived to object storage once an appointment is paid.
type PaymentReceipt struct {
	AppointmentID string             `json:"appointmentId"`
	UserID        string             `json:"userId"`
	DocID         string             `json:"docId"`
	DoctorName    string             `json:"doctorName"`
	PatientName   string             `json:"patientName"`
	SlotDate      string             `json:"slotDate"`
	SlotTime      string             `json:"slotTime"`
	Amount        float64            `json:"amount"`
	Method        PaymentMethod      `json:"paymentMethod"`
	Attestation   PaymentAttestation `json:"paymentAttestation"`
	PaidAt        time.Time          `json:"paidAt"`
}

func NewPaymentReceipt(appointment *Appointment) *PaymentReceipt {
	receipt := &PaymentReceipt{
		AppointmentID: appointment.ID,
		UserID:        appointment.UserID,
		DocID:         appointment.DocID,
		DoctorName:    appointment.DocSnapshot.Name,
		PatientName:   appointment.UserSnapshot.Name,
		SlotDate:      appointment.Day,
		SlotTime:      appointment.Time,
		Amount:        appointment.Amount,
		Method:        appointment.PaymentMethod,
	}
	if appointment.PaymentAttestation != nil {
		receipt.Attestation = *appointment.PaymentAttestation
	}
	if appointment.PaidAt != nil {
		receipt.PaidAt = *appointment.PaidAt
	}
	return receipt
}
