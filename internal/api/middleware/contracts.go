package middleware

// Logger интерфейс логгера для middleware
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Authorizer проверяет ключ администратора
type Authorizer interface {
	Authorize(key string) error
}
