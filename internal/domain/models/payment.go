// internal/domain/models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment statuses.
const (
	PaymentSucceeded = "succeeded"
	PaymentFailed    = "failed"
	PaymentPending   = "pending"
)

// Payment is one entry in a user's billing history. Records are
// append-only: once written they are never updated, only listed.
type Payment struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	TxnRef string             `bson:"txn_ref" json:"txn_ref"` // simulated processor reference

	AmountCents int64  `bson:"amount_cents" json:"amount_cents"` // minor currency units
	Currency    string `bson:"currency" json:"currency"`
	Status      string `bson:"status" json:"status"` // succeeded | failed | pending

	PaymentDate time.Time `bson:"payment_date" json:"payment_date"`
	PeriodStart time.Time `bson:"period_start" json:"period_start"`
	PeriodEnd   time.Time `bson:"period_end" json:"period_end"`
}

// IsValidPaymentStatus reports whether s is a recognized payment status.
func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentSucceeded, PaymentFailed, PaymentPending:
		return true
	}
	return false
}
