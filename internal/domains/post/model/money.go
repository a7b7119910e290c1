package model

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// NUMERIC(10,2)
const (
	MoneyMaxDigits     = 10
	MoneyDecimalPlaces = 2
)

// Money là số tiền 2 chữ số thập phân.
// JSON: nhận number hoặc string, render string cố định 2 chữ số ("1500.00")
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(MoneyDecimalPlaces) + `"`), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}

// Các helper dưới đây chỉ làm việc trên coefficient/exponent, không rescale:
// exponent do client gửi có thể tới ±2^31 ("1e-300000"), rescale sẽ tạo 10^n khổng lồ.

// ExceedsDecimalPlaces: true nếu có chữ số khác 0 sau vị trí thập phân thứ `places`
func (m Money) ExceedsDecimalPlaces(places int32) bool {
	exp := int64(m.Exponent())
	if exp >= -int64(places) || m.IsZero() {
		return false
	}
	coef := m.Coefficient()
	coef.Abs(coef)

	// cần coefficient chia hết cho 10^shift, không thể nếu shift > số chữ số
	shift := -exp - int64(places)
	if shift > int64(m.NumDigits()) {
		return true
	}
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(shift), nil)
	return new(big.Int).Rem(coef, pow).Sign() != 0
}

// IntegerDigits đếm chữ số phần nguyên (0 -> 0)
func (m Money) IntegerDigits() int64 {
	if m.IsZero() {
		return 0
	}
	n := int64(m.NumDigits()) + int64(m.Exponent())
	if n < 0 {
		return 0
	}
	return n
}

// Fixed trả về giá trị ở scale 2. Chỉ gọi sau khi đã validate
func (m Money) Fixed() decimal.Decimal {
	if m.IsZero() {
		return decimal.Zero
	}
	return m.Round(MoneyDecimalPlaces)
}
