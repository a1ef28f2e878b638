package calendar

import (
	"errors"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

var (
	ErrInvalidDate  = errors.New("data inválida")
	ErrInvalidMonth = errors.New("mês inválido")
)

// Date reduz t ao dia civil, em UTC à meia-noite. Os campos de calendário são
// lidos na localização do próprio t.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MonthAnchor retorna o primeiro instante do mês de t. Duas datas do mesmo mês
// e ano produzem sempre a mesma âncora, independente de dia, hora ou fuso.
func MonthAnchor(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampedDate usa originalDay quando o dia existe no mês alvo, senão o último
// dia do mês. Cada mês é calculado a partir do dia original.
func ClampedDate(originalDay int, month time.Month, year int) time.Time {
	last := DaysIn(year, month)
	day := originalDay
	if day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return NewDate(year, month, day)
}

func AddMonths(anchor time.Time, n int) time.Time {
	y, m, _ := anchor.Date()
	return time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween retorna quantos meses separam as âncoras de from e to.
func MonthsBetween(from, to time.Time) int {
	fy, fm, _ := from.Date()
	ty, tm, _ := to.Date()
	return (ty-fy)*12 + int(tm-fm)
}

func DaysBetween(from, to time.Time) int {
	return int(Date(to).Sub(Date(from)).Hours() / 24)
}

// MonthRange lista as âncoras de from até to, inclusive.
func MonthRange(from, to time.Time) []time.Time {
	start := MonthAnchor(from)
	n := MonthsBetween(start, MonthAnchor(to))
	if n < 0 {
		return nil
	}
	out := make([]time.Time, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, AddMonths(start, i))
	}
	return out
}

func SameMonth(a, b time.Time) bool {
	return MonthAnchor(a).Equal(MonthAnchor(b))
}

// ParseDate aceita "2006-01-02" ou RFC3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Date(t), nil
	}
	return time.Time{}, ErrInvalidDate
}

func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidMonth
	}
	return MonthAnchor(t), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatMonth(t time.Time) string {
	return t.Format(MonthLayout)
}
