package entity

// ReceiptHeader holds the shop details printed at the top of a receipt.
type ReceiptHeader struct {
	ShopName string `json:"shopName"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// ReceiptItem is one printed order line.
type ReceiptItem struct {
	Category  string  `json:"category"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unitPrice"`
	Total     float64 `json:"total"`
}

// ReceiptPayment is one printed installment.
type ReceiptPayment struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// Receipt is composed from an order at print time. It is not persisted.
type Receipt struct {
	Header        ReceiptHeader    `json:"header"`
	OrderNo       string           `json:"orderNo"`
	Date          string           `json:"date"`
	Customer      string           `json:"customer"`
	Phone         string           `json:"phone,omitempty"`
	Items         []ReceiptItem    `json:"items"`
	Amount        float64          `json:"amount"`
	Advance       float64          `json:"advance"`
	Payments      []ReceiptPayment `json:"payments,omitempty"`
	Remaining     float64          `json:"remaining"`
	PaymentStatus string           `json:"paymentStatus"`
	WorkStatus    string           `json:"workStatus"`
}
