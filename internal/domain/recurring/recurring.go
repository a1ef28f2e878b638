package recurring

import (
	"time"

	"Cashline/internal/domain/transaction"
	"Cashline/internal/pkg/calendar"
)

// Window define quantos meses antes e depois do mês corrente uma série
// recorrente deve cobrir.
type Window struct {
	MonthsBack    int `json:"monthsBack"`
	MonthsForward int `json:"monthsForward"`
}

var DefaultWindow = Window{MonthsBack: 12, MonthsForward: 24}

// Series é o resultado da criação: o template e as ocorrências geradas.
type Series struct {
	Template    *transaction.Transaction   `json:"template"`
	Occurrences []*transaction.Transaction `json:"occurrences"`
}

// WantedMonths lista as âncoras cobertas pela janela em torno de today,
// ampliada para incluir o mês do template.
func WantedMonths(w Window, today, templateDate time.Time) []time.Time {
	current := calendar.MonthAnchor(today)
	start := calendar.AddMonths(current, -w.MonthsBack)
	end := calendar.AddMonths(current, w.MonthsForward)

	templateAnchor := calendar.MonthAnchor(templateDate)
	if templateAnchor.Before(start) {
		start = templateAnchor
	}
	if templateAnchor.After(end) {
		end = templateAnchor
	}

	return calendar.MonthRange(start, end)
}

// MissingMonths é a diferença wanted − existing, preservando a ordem de wanted.
func MissingMonths(wanted, existing []time.Time) []time.Time {
	have := make(map[time.Time]struct{}, len(existing))
	for _, m := range existing {
		have[calendar.MonthAnchor(m)] = struct{}{}
	}

	missing := make([]time.Time, 0, len(wanted))
	for _, m := range wanted {
		anchor := calendar.MonthAnchor(m)
		if _, ok := have[anchor]; ok {
			continue
		}
		have[anchor] = struct{}{}
		missing = append(missing, anchor)
	}
	return missing
}
