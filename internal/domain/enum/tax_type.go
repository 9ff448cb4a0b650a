package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TaxType says whether a medicine's selling price already contains tax
// (inclusive) or tax is added on top at checkout (exclusive).
type TaxType int

const (
	TaxTypeExclusive TaxType = 0
	TaxTypeInclusive TaxType = 1
)

func (t TaxType) String() string {
	if t == TaxTypeInclusive {
		return "Inclusive"
	}
	return "Exclusive"
}

func (t TaxType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts either the name or the numeric value.
func (t *TaxType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = TaxType(i)
		return nil
	}
	if str == "Inclusive" {
		*t = TaxTypeInclusive
	} else {
		*t = TaxTypeExclusive
	}
	return nil
}

func (t TaxType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TaxType) Scan(value interface{}) error {
	switch v := value.(type) {
	case int64:
		*t = TaxType(v)
	case int:
		*t = TaxType(v)
	default:
		*t = TaxTypeExclusive
	}
	return nil
}
