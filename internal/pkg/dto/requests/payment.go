package requests

type MarkPaid struct {
	AppointmentID  string          `json:"appointmentId" validate:"required"`
	PaymentMethod  string          `json:"paymentMethod" validate:"required"`
	PaymentDetails *PaymentDetails `json:"paymentDetails"`
}

// PaymentDetails is the raw form the gateway or the doctor submits. Only
// the fields of the selected method are read.
type PaymentDetails struct {
	CardNumber         string `json:"cardNumber"`
	Expiry             string `json:"expiry"`
	CVV                string `json:"cvv"`
	UpiID              string `json:"upiId"`
	Bank               string `json:"bank"`
	AccountNumber      string `json:"accountNumber"`
	NetBankingUserID   string `json:"netBankingUserId"`
	NetBankingPassword string `json:"netBankingPassword"`
	TransactionPin     string `json:"transactionPin"`
	Wallet             string `json:"wallet"`
	WalletMobile       string `json:"walletMobile"`
}

type CreditCardDetails struct {
	CardNumber string `json:"cardNumber" validate:"required,len=16,numeric"`
	Expiry     string `json:"expiry" validate:"required,card_expiry"`
	CVV        string `json:"cvv" validate:"required,len=3,numeric"`
}

type UPIDetails struct {
	UpiID string `json:"upiId" validate:"required"`
}

type NetBankingDetails struct {
	Bank               string `json:"bank" validate:"required,oneof=HDFC SBI ICICI Axis"`
	AccountNumber      string `json:"accountNumber" validate:"required,min=6"`
	NetBankingUserID   string `json:"netBankingUserId" validate:"required"`
	NetBankingPassword string `json:"netBankingPassword" validate:"required"`
	TransactionPin     string `json:"transactionPin" validate:"required,len=6,numeric"`
}

type WalletDetails struct {
	Wallet       string `json:"wallet" validate:"required,oneof=Paytm PhonePe GooglePay"`
	WalletMobile string `json:"walletMobile" validate:"required,len=10,numeric"`
}
