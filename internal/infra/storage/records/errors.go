package records

import "errors"

var (
	// ErrInvalidName возвращается, когда имя документа пустое или содержит путь
	ErrInvalidName = errors.New("records: invalid document name")

	// ErrLoad возвращается при ошибке чтения документа
	ErrLoad = errors.New("records: failed to load document")

	// ErrSave возвращается при ошибке записи документа
	ErrSave = errors.New("records: failed to save document")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("records: failed to build query")

	// ErrDecode возвращается, когда документ является JSON, но не соответствует ожидаемой схеме
	ErrDecode = errors.New("records: failed to decode document")

	// ErrEncode возвращается, когда документ не удается сериализовать
	ErrEncode = errors.New("records: failed to encode document")
)
