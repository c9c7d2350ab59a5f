package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPaymentMethod 收款表单的默认付款方式
const DefaultPaymentMethod = "Cash"

// Payment 收款记录
type Payment struct {
	ID            string          `json:"id" bson:"_id"`
	ProjectID     string          `json:"project_id" bson:"project_id"`
	Amount        decimal.Decimal `json:"amount" bson:"amount"`
	PaymentDate   string          `json:"payment_date" bson:"payment_date"` // YYYY-MM-DD
	PaymentMethod string          `json:"payment_method" bson:"payment_method"`
	Notes         *string         `json:"notes" bson:"notes"`
	CreatedAt     time.Time       `json:"created_at" bson:"created_at"`

	// 关联查询填充
	Project *Project `json:"projects,omitempty" bson:"projects,omitempty"`
}

// AmountInput 表单金额原文，JSON 中可以是数字也可以是字符串，由 finance.ParseAmount 解析
type AmountInput string

// UnmarshalJSON 数字按原样保留字面量，避免经过 float64
func (a *AmountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountInput(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = AmountInput(n.String())
	return nil
}

// PaymentInput 新增收款请求，金额先保留原文再做十进制解析
type PaymentInput struct {
	ProjectID     string      `json:"project_id" validate:"required"`
	Amount        AmountInput `json:"amount" validate:"required"`
	PaymentDate   string      `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string      `json:"payment_method"`
	Notes         *string     `json:"notes"`
}

// PaymentOptions 收款表单下拉数据
type PaymentOptions struct {
	Clients  []Client  `json:"clients"`
	Projects []Project `json:"projects"`
}

// PaymentListResponse 收款跟踪列表
type PaymentListResponse struct {
	Payments      []Payment       `json:"payments"`
	TotalReceived decimal.Decimal `json:"total_received"`
}
