package shared

import (
	"bytes"
	"encoding/json"
)

// Optional phân biệt field bị bỏ qua, field = null và field có giá trị
// trong request body (cần cho PATCH: field bỏ qua thì giữ nguyên)
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some trả về Optional đã có giá trị
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null trả về Optional được gửi với giá trị null
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON chỉ được gọi khi key có mặt trong body
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// Ptr trả về nil khi null, pointer tới value khi có giá trị
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}
