package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LedgerType classifies a ledger entry.
type LedgerType int

const (
	LedgerTypeIncome  LedgerType = 0
	LedgerTypeExpense LedgerType = 1
)

func (t LedgerType) String() string {
	if t == LedgerTypeExpense {
		return "expense"
	}
	return "income"
}

// ParseLedgerType maps "income"/"expense" to a LedgerType.
func ParseLedgerType(s string) (LedgerType, bool) {
	switch s {
	case "income":
		return LedgerTypeIncome, true
	case "expense":
		return LedgerTypeExpense, true
	}
	return LedgerTypeIncome, false
}

func (t LedgerType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *LedgerType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, ok := ParseLedgerType(str)
	if !ok {
		return fmt.Errorf("unknown ledger type %q", str)
	}
	*t = v
	return nil
}

func (t LedgerType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *LedgerType) Scan(value interface{}) error {
	if value == nil {
		*t = LedgerTypeIncome
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = LedgerType(v)
	case int:
		*t = LedgerType(v)
	}
	return nil
}
