package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TransactionType is the cash direction of a transaction.
type TransactionType int

const (
	TransactionTypeIn  TransactionType = 0
	TransactionTypeOut TransactionType = 1
)

func (t TransactionType) String() string {
	if t == TransactionTypeOut {
		return "out"
	}
	return "in"
}

// ParseTransactionType maps "in"/"out" to a TransactionType.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch s {
	case "in":
		return TransactionTypeIn, true
	case "out":
		return TransactionTypeOut, true
	}
	return TransactionTypeIn, false
}

func (t TransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, ok := ParseTransactionType(str)
	if !ok {
		return fmt.Errorf("unknown transaction type %q", str)
	}
	*t = v
	return nil
}

func (t TransactionType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TransactionType) Scan(value interface{}) error {
	if value == nil {
		*t = TransactionTypeIn
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = TransactionType(v)
	case int:
		*t = TransactionType(v)
	}
	return nil
}

// TransactionStatus tells whether a transaction's money has been fully realized.
type TransactionStatus int

const (
	TransactionStatusPending TransactionStatus = 0
	TransactionStatusDone    TransactionStatus = 1
)

func (s TransactionStatus) String() string {
	if s == TransactionStatusDone {
		return "done"
	}
	return "pending"
}

// ParseTransactionStatus maps "pending"/"done" to a TransactionStatus.
func ParseTransactionStatus(s string) (TransactionStatus, bool) {
	switch s {
	case "pending":
		return TransactionStatusPending, true
	case "done":
		return TransactionStatusDone, true
	}
	return TransactionStatusPending, false
}

func (s TransactionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, ok := ParseTransactionStatus(str)
	if !ok {
		return fmt.Errorf("unknown transaction status %q", str)
	}
	*s = v
	return nil
}

func (s TransactionStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TransactionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TransactionStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TransactionStatus(v)
	case int:
		*s = TransactionStatus(v)
	}
	return nil
}
