package model

// CurrencyINR is the only currency orders are created in.
const CurrencyINR = "INR"

// OrderRequest is the client body for creating a payment order.  Either
// Amount (major units) or Package must be present; when both are given they
// must agree.
type OrderRequest struct {
    Amount  float64     `json:"amount"`
    Package PackageTier `json:"package,omitempty"`
}

// Order is the payment order returned by the gateway.  It is passed back to
// the client unchanged.
type Order struct {
    ID         string            `json:"id"`
    Entity     string            `json:"entity"`
    Amount     int64             `json:"amount"`
    AmountPaid int64             `json:"amount_paid"`
    AmountDue  int64             `json:"amount_due"`
    Currency   string            `json:"currency"`
    Receipt    string            `json:"receipt"`
    Status     string            `json:"status"`
    Attempts   int               `json:"attempts"`
    Notes      map[string]string `json:"notes,omitempty"`
    CreatedAt  int64             `json:"created_at"`
}

// VerificationRecord is what the checkout posts back after a payment
// completes.  It is checked once and never stored.
type VerificationRecord struct {
    OrderID   string `json:"razorpay_order_id"`
    PaymentID string `json:"razorpay_payment_id"`
    Signature string `json:"razorpay_signature"`
}
