// Package finance 汇总项目与收款金额：已收、剩余、收款进度及看板/客户维度的合计。
// 所有金额使用 decimal 计算，避免大量小额收款累加时的浮点误差。
package finance

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount 金额无法解析或为负数
var ErrInvalidAmount = errors.New("金额格式无效")

var hundred = decimal.NewFromInt(100)

// ParseAmount 解析表单金额，不接受负数。
// 逗号只作为小数分隔符："12,34" 可以，"1,000" 和 "1,234.56" 这类千分位写法直接拒绝。
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		frac := s[i+1:]
		if strings.ContainsAny(frac, ",.") || strings.Contains(s, ".") || len(frac) < 1 || len(frac) > 2 {
			return decimal.Zero, ErrInvalidAmount
		}
		s = s[:i] + "." + frac
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
