package admin

// ReservationChange правка бронирования администратором; nil поля не меняются.
// FormationID по умолчанию совпадает с формацией бронирования.
type ReservationChange struct {
	FormationID *string
	SessionID   *string
	Status      *string
}

// IsEmpty true, если правка ничего не меняет
func (c ReservationChange) IsEmpty() bool {
	return c.FormationID == nil && c.SessionID == nil && c.Status == nil
}
