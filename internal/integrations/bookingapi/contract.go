package bookingapi

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics наблюдение за исходящими вызовами
type Metrics interface {
	ObserveClientCall(operation, outcome string, d time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) ObserveClientCall(string, string, time.Duration) {}
