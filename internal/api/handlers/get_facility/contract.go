package get_facility

type Logger interface {
	Info(format string, v ...interface{})
}
