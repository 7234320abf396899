package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentStatus is derived from an order's amount, advance and partial payments.
type PaymentStatus int

const (
	PaymentStatusUnpaid  PaymentStatus = 0
	PaymentStatusPartial PaymentStatus = 1
	PaymentStatusPaid    PaymentStatus = 2
)

var paymentStatusNames = [...]string{"unpaid", "partial", "paid"}

func (s PaymentStatus) String() string {
	if s < 0 || int(s) >= len(paymentStatusNames) {
		return "unpaid"
	}
	return paymentStatusNames[s]
}

// ParsePaymentStatus maps a wire name to a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	for i, name := range paymentStatusNames {
		if name == s {
			return PaymentStatus(i), true
		}
	}
	return PaymentStatusUnpaid, false
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, ok := ParsePaymentStatus(str)
	if !ok {
		return fmt.Errorf("unknown payment status %q", str)
	}
	*s = v
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusUnpaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
