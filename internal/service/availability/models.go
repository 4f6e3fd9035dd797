package availability

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/m04kA/atelier-booking/internal/domain"
)

// maxCapacity верхняя граница, чтобы float из запроса не переполнил int
const maxCapacity = math.MaxInt32

// storedEntry форма записи в документе. Старые записи могут не содержать
// capacity, isOpen или isCancelled, поэтому поля указатели: nil означает «нужна нормализация».
// Capacity хранится как число JSON без требования целочисленности.
type storedEntry struct {
	SessionID   string   `json:"sessionId"`
	Capacity    *float64 `json:"capacity,omitempty"`
	IsOpen      *bool    `json:"isOpen,omitempty"`
	IsCancelled *bool    `json:"isCancelled,omitempty"`
}

// UnmarshalJSON принимает capacity числом или числовой строкой.
// Нечисловое значение читается как отсутствующее и заменяется вместимостью по умолчанию.
func (e *storedEntry) UnmarshalJSON(data []byte) error {
	type plain storedEntry
	aux := struct {
		*plain
		Capacity json.RawMessage `json:"capacity"`
	}{plain: (*plain)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Capacity = parseCapacity(aux.Capacity)
	return nil
}

func parseCapacity(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return nil
	}
	return &n
}

func (e storedEntry) toDomain(defaultCapacity int) domain.SessionAvailability {
	capacity := defaultCapacity
	if e.Capacity != nil {
		capacity = floorCapacity(*e.Capacity)
	}
	open := e.IsOpen == nil || *e.IsOpen
	cancelled := e.IsCancelled != nil && *e.IsCancelled
	return domain.SessionAvailability{
		SessionID:   e.SessionID,
		Capacity:    capacity,
		IsOpen:      open && !cancelled,
		IsCancelled: cancelled,
	}
}

func fromDomain(a domain.SessionAvailability) storedEntry {
	capacity := float64(a.Capacity)
	open := a.IsOpen
	cancelled := a.IsCancelled
	return storedEntry{
		SessionID:   a.SessionID,
		Capacity:    &capacity,
		IsOpen:      &open,
		IsCancelled: &cancelled,
	}
}

// storedEntries документ доступности. Записывается объектом с ключом sessionId;
// читается как из объекта, так и из массива записей.
type storedEntries []storedEntry

func (list *storedEntries) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		var entries []storedEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return err
		}
		*list = entries
		return nil
	}

	var byID map[string]storedEntry
	if err := json.Unmarshal(trimmed, &byID); err != nil {
		return err
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make(storedEntries, 0, len(ids))
	for _, id := range ids {
		entry := byID[id]
		entry.SessionID = id
		entries = append(entries, entry)
	}
	*list = entries
	return nil
}

func (list storedEntries) MarshalJSON() ([]byte, error) {
	byID := make(map[string]storedEntry, len(list))
	for _, e := range list {
		byID[e.SessionID] = e
	}
	return json.Marshal(byID)
}

func floorCapacity(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > maxCapacity {
		return maxCapacity
	}
	return int(math.Floor(v))
}

// validCapacity true для конечного неотрицательного числа
func validCapacity(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// ApplyUpdate применяет частичное обновление к записи.
//
// Правила:
//   - capacity меняется только на конечное неотрицательное число (с округлением вниз);
//   - isCancelled=true всегда закрывает сессию, даже если в том же вызове isOpen=true;
//   - isCancelled=false для отмененной сессии без явного isOpen открывает её снова;
//   - иначе явный isOpen применяется как есть.
func ApplyUpdate(current domain.SessionAvailability, u domain.AvailabilityUpdate) domain.SessionAvailability {
	next := current

	if u.Capacity != nil && validCapacity(*u.Capacity) {
		next.Capacity = floorCapacity(*u.Capacity)
	}
	if u.IsOpen != nil {
		next.IsOpen = *u.IsOpen
	}
	if u.IsCancelled != nil {
		next.IsCancelled = *u.IsCancelled
		if !*u.IsCancelled && current.IsCancelled && u.IsOpen == nil {
			next.IsOpen = true
		}
	}
	if next.IsCancelled {
		next.IsOpen = false
	}
	return next
}
