package domain

import "io"

// TableReader интерфейс для чтения таблиц
type TableReader interface {
	ReadTable(src Source) (*Table, error)
}

// ConfigReader интерфейс для чтения конфигурации
type ConfigReader interface {
	ReadConfig(path string) (*Config, error)
}

// FmtFunc форматирует одно значение для вывода
type FmtFunc func(float64) string

// TableWriter интерфейс для записи результатов
type TableWriter interface {
	WriteTable(out io.Writer, t *Table, formatter FmtFunc) error
	WriteValues(out io.Writer, values []float64, formatter FmtFunc) error
}
