package amount

import (
	"github.com/shopspring/decimal"
)

// 金额比较容差（两位小数币种粒度下足够宽松）
var tolerance = decimal.New(1, -8)

// Zero 零金额
var Zero = decimal.Zero

// FromFloat 从浮点数创建金额
func FromFloat(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

// Equal 判断两个金额在容差内相等
func Equal(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

// GreaterThanOrEqual 判断 a >= b（容差内）
func GreaterThanOrEqual(a, b decimal.Decimal) bool {
	return a.GreaterThanOrEqual(b) || Equal(a, b)
}

// GreaterThan 判断 a > b（超出容差）
func GreaterThan(a, b decimal.Decimal) bool {
	return a.Sub(b).GreaterThan(tolerance)
}

// LessThan 判断 a < b（超出容差）
func LessThan(a, b decimal.Decimal) bool {
	return b.Sub(a).GreaterThan(tolerance)
}

// Positive 判断金额为正
func Positive(a decimal.Decimal) bool {
	return GreaterThan(a, decimal.Zero)
}

// Min 返回较小的金额
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Sum 累加金额
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// NonNegative 将负金额归零
func NonNegative(a decimal.Decimal) decimal.Decimal {
	if a.IsNegative() {
		return decimal.Zero
	}
	return a
}

// Format 输出两位小数字符串
func Format(a decimal.Decimal) string {
	return a.Round(2).StringFixed(2)
}
