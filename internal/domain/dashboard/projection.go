package dashboard

import (
	"sort"
	"time"

	"Cashline/internal/domain/transaction"
	"Cashline/internal/pkg/calendar"
	"Cashline/internal/pkg/money"
)

// AlertHorizonDays limita a distância, em dias, de um alerta de saldo negativo.
const AlertHorizonDays = 30

type MonthProjection struct {
	Month       time.Time    `json:"month"`
	Income      money.Cents  `json:"income"`
	Expense     money.Cents  `json:"expense"`
	Net         money.Cents  `json:"net"`
	Opening     money.Cents  `json:"opening"`
	Available   money.Cents  `json:"available"`
	Current     money.Cents  `json:"current"`
	BudgetLimit *money.Cents `json:"budgetLimit,omitempty"`
}

type DayBalance struct {
	Date    time.Time   `json:"date"`
	Balance money.Cents `json:"balance"`
}

type DailyProjection struct {
	Month            time.Time    `json:"month"`
	InitialBalance   money.Cents  `json:"initialBalance"`
	Days             []DayBalance `json:"days"`
	FirstNegativeDay *time.Time   `json:"firstNegativeDay,omitempty"`
}

// Balance devolve o saldo projetado ao fim do dia informado.
func (p *DailyProjection) Balance(day time.Time) (money.Cents, bool) {
	d := calendar.Date(day)
	for _, b := range p.Days {
		if b.Date.Equal(d) {
			return b.Balance, true
		}
	}
	return 0, false
}

// NormalizeAnchors converte para âncoras, remove duplicadas e ordena.
func NormalizeAnchors(anchors []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(anchors))
	out := make([]time.Time, 0, len(anchors))
	for _, a := range anchors {
		anchor := calendar.MonthAnchor(a)
		if _, ok := seen[anchor]; ok {
			continue
		}
		seen[anchor] = struct{}{}
		out = append(out, anchor)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// ProjectMonths calcula o saldo acumulado mês a mês. Available de um mês é o
// saldo de todos os registros visíveis até o fim dele; Current considera do
// mês apenas o que vence até today. Meses fora da lista ainda entram no saldo.
func ProjectMonths(items []*transaction.Transaction, anchors []time.Time, today time.Time, budgets map[time.Time]money.Cents) []MonthProjection {
	months := NormalizeAnchors(anchors)
	if len(months) == 0 {
		return []MonthProjection{}
	}
	today = calendar.Date(today)

	byMonth := make(map[time.Time][]*transaction.Transaction)
	var before money.Cents
	for _, t := range items {
		if !t.IsVisible() {
			continue
		}
		anchor := calendar.MonthAnchor(t.OccurrenceDate)
		if anchor.Before(months[0]) {
			before += t.SignedAmount()
			continue
		}
		byMonth[anchor] = append(byMonth[anchor], t)
	}

	out := make([]MonthProjection, 0, len(months))
	carry := before
	cursor := months[0]
	for _, m := range months {
		// meses que ficaram de fora da lista
		for ; cursor.Before(m); cursor = calendar.AddMonths(cursor, 1) {
			carry += netOf(byMonth[cursor])
		}
		cursor = calendar.AddMonths(m, 1)

		p := MonthProjection{Month: m, Opening: carry}
		var upToToday money.Cents
		for _, t := range byMonth[m] {
			switch t.Type {
			case transaction.Income:
				p.Income += t.AmountCents
			case transaction.Expense:
				p.Expense += t.AmountCents
			}
			if !t.OccurrenceDate.After(today) {
				upToToday += t.SignedAmount()
			}
		}
		p.Net = p.Income - p.Expense
		p.Available = carry + p.Net
		p.Current = carry + upToToday

		if limit, ok := budgets[m]; ok {
			l := limit
			p.BudgetLimit = &l
		}

		carry = p.Available
		out = append(out, p)
	}
	return out
}

// ProjectDaily projeta o saldo dia a dia de um mês. O saldo inicial é o
// resultado do mês anterior, nunca abaixo de zero. O primeiro dia negativo a
// partir de today só é informado se estiver entre 1 e 30 dias adiante.
func ProjectDaily(items []*transaction.Transaction, month, today time.Time) DailyProjection {
	anchor := calendar.MonthAnchor(month)
	previous := calendar.AddMonths(anchor, -1)
	today = calendar.Date(today)

	deltas := make(map[int]money.Cents)
	var previousNet money.Cents
	for _, t := range items {
		if !t.IsVisible() {
			continue
		}
		switch {
		case calendar.SameMonth(t.OccurrenceDate, anchor):
			deltas[t.OccurrenceDate.Day()] += t.SignedAmount()
		case calendar.SameMonth(t.OccurrenceDate, previous):
			previousNet += t.SignedAmount()
		}
	}

	initial := previousNet
	if initial < 0 {
		initial = 0
	}

	n := calendar.DaysIn(anchor.Year(), anchor.Month())
	p := DailyProjection{
		Month:          anchor,
		InitialBalance: initial,
		Days:           make([]DayBalance, 0, n),
	}

	balance := initial
	for day := 1; day <= n; day++ {
		balance += deltas[day]
		p.Days = append(p.Days, DayBalance{
			Date:    calendar.NewDate(anchor.Year(), anchor.Month(), day),
			Balance: balance,
		})
	}

	for _, d := range p.Days {
		if d.Date.Before(today) || d.Balance >= 0 {
			continue
		}
		away := calendar.DaysBetween(today, d.Date)
		if away >= 1 && away <= AlertHorizonDays {
			day := d.Date
			p.FirstNegativeDay = &day
		}
		break
	}
	return p
}

func netOf(items []*transaction.Transaction) money.Cents {
	var net money.Cents
	for _, t := range items {
		net += t.SignedAmount()
	}
	return net
}
