package records

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// LoadJSON читает документ и декодирует его в T.
// Отсутствующий, пустой или синтаксически битый документ дает нулевое значение T без ошибки.
// Корректный JSON, который не ложится в T, возвращает ErrDecode: вызывающий не должен
// перезаписывать такой документ, иначе уцелевшие записи будут потеряны.
func LoadJSON[T any](ctx context.Context, store Store, name string) (T, error) {
	var out T

	data, err := store.Load(ctx, name)
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(data)) == 0 || !json.Valid(data) {
		return out, nil
	}

	if err := json.Unmarshal(data, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
	}
	return out, nil
}

// SaveJSON сериализует v и перезаписывает документ
func SaveJSON[T any](ctx context.Context, store Store, name string, v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncode, name, err)
	}
	return store.Save(ctx, name, data)
}
