package entity

// ReceiptHeader holds the pharmacy identity printed at the top of a receipt.
type ReceiptHeader struct {
	PharmacyName string `json:"pharmacy_name"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	LicenseNo    string `json:"license_no,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Discount    float64 `json:"discount,omitempty"`
	Total       float64 `json:"total"`
	BatchNumber string  `json:"batch_number,omitempty"`
}

// Receipt is a value object representing a printable receipt. It is NOT a
// database entity; it is composed from a sale's stored snapshot at print
// time so the printed figures always match what was charged at checkout.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	InvoiceNo     string        `json:"invoice_no"`
	Date          string        `json:"date"`
	Cashier       string        `json:"cashier,omitempty"`
	Patient       string        `json:"patient,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Items         []ReceiptItem `json:"items"`
	SubTotal      float64       `json:"sub_total"`
	Tax           float64       `json:"tax"`
	Discount      float64       `json:"discount"`
	Total         float64       `json:"total"`
	Paid          float64       `json:"paid"`
	Due           float64       `json:"due"`
	ChangeReturn  float64       `json:"change_return"`
	Footer        string        `json:"footer,omitempty"`
}
