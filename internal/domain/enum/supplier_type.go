package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SupplierType classifies where a branch sources stock from.
type SupplierType string

const (
	SupplierTypeDistributor  SupplierType = "distributor"
	SupplierTypeWholesaler   SupplierType = "wholesaler"
	SupplierTypeManufacturer SupplierType = "manufacturer"
)

func (t SupplierType) String() string { return string(t) }

func (t SupplierType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *SupplierType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = SupplierType(s)
	return nil
}

func (t SupplierType) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan treats NULL as distributor, the column default.
func (t *SupplierType) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = SupplierTypeDistributor
	case string:
		*t = SupplierType(v)
	case []byte:
		*t = SupplierType(v)
	}
	return nil
}
