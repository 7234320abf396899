package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// WorkStatus tracks production progress of an order. It is set by hand.
type WorkStatus int

const (
	WorkStatusPending    WorkStatus = 0
	WorkStatusInProgress WorkStatus = 1
	WorkStatusDone       WorkStatus = 2
)

var workStatusNames = [...]string{"pending", "in-progress", "done"}

func (s WorkStatus) String() string {
	if s < 0 || int(s) >= len(workStatusNames) {
		return "pending"
	}
	return workStatusNames[s]
}

// ParseWorkStatus maps a wire name to a WorkStatus.
func ParseWorkStatus(s string) (WorkStatus, bool) {
	for i, name := range workStatusNames {
		if name == s {
			return WorkStatus(i), true
		}
	}
	return WorkStatusPending, false
}

// Toggle flips between done and not done. Anything unfinished becomes done.
func (s WorkStatus) Toggle() WorkStatus {
	if s == WorkStatusDone {
		return WorkStatusPending
	}
	return WorkStatusDone
}

func (s WorkStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *WorkStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, ok := ParseWorkStatus(str)
	if !ok {
		return fmt.Errorf("unknown work status %q", str)
	}
	*s = v
	return nil
}

func (s WorkStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *WorkStatus) Scan(value interface{}) error {
	if value == nil {
		*s = WorkStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = WorkStatus(v)
	case int:
		*s = WorkStatus(v)
	}
	return nil
}
