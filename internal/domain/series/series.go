package series

import (
	"sort"
	"time"

	"Cashline/internal/domain/transaction"
	appErrors "Cashline/internal/errors"
)

type CleanupOption string

const (
	CleanupAll        CleanupOption = "all"
	CleanupFutureOnly CleanupOption = "futureOnly"
)

func (o CleanupOption) IsValid() bool {
	return o == CleanupAll || o == CleanupFutureOnly
}

func ParseCleanupOption(s string) (CleanupOption, error) {
	o := CleanupOption(s)
	if !o.IsValid() {
		return "", appErrors.ErrInvalidCleanupOption.WithDetails(map[string]interface{}{
			"cleanup": s,
			"allowed": []CleanupOption{CleanupAll, CleanupFutureOnly},
		})
	}
	return o, nil
}

// Deletion é o resultado do planejamento: os ids a remover e se a série
// inteira deixa de existir. SeriesEnd é o novo encerramento de uma série
// recorrente cortada com futureOnly.
type Deletion struct {
	SeriesID    int64            `json:"seriesId,omitempty"`
	Kind        transaction.Kind `json:"kind"`
	IDs         []int64          `json:"deletedIds"`
	WholeSeries bool             `json:"wholeSeries"`
	SeriesEnd   *time.Time       `json:"seriesEnd,omitempty"`
}

// Plan decide o que remover a partir de um snapshot completo do armazenamento.
// O alvo já deve ter sido localizado no snapshot. Para séries recorrentes com
// futureOnly, cutoff é a data de corte; nas parceladas vale o número da parcela.
func Plan(snapshot []*transaction.Transaction, target *transaction.Transaction, cutoff time.Time, option CleanupOption) Deletion {
	seriesID, linked := target.SeriesID()
	if !linked {
		return Deletion{Kind: transaction.KindSimple, IDs: []int64{target.Id}}
	}

	head, members := collect(snapshot, seriesID)

	var d Deletion
	switch {
	case target.Kind.IsRecurring():
		d = planRecurring(head, members, cutoff, option)
	case target.Kind.IsInstallment():
		d = planInstallment(head, members, target, option)
	}
	d.SeriesID = seriesID
	d.Kind = target.Kind

	sort.Slice(d.IDs, func(i, j int) bool { return d.IDs[i] < d.IDs[j] })
	return d
}

// collect separa o cabeça da série dos demais membros. head pode ser nil
// quando o template já não existe.
func collect(snapshot []*transaction.Transaction, seriesID int64) (*transaction.Transaction, []*transaction.Transaction) {
	var head *transaction.Transaction
	members := make([]*transaction.Transaction, 0)
	for _, t := range snapshot {
		if t.Id == seriesID {
			head = t
			continue
		}
		if t.ParentTransactionId != nil && *t.ParentTransactionId == seriesID {
			members = append(members, t)
		}
	}
	return head, members
}

func planRecurring(head *transaction.Transaction, members []*transaction.Transaction, cutoff time.Time, option CleanupOption) Deletion {
	d := Deletion{IDs: make([]int64, 0, len(members)+1)}

	if option == CleanupAll {
		for _, m := range members {
			d.IDs = append(d.IDs, m.Id)
		}
		if head != nil {
			d.IDs = append(d.IDs, head.Id)
		}
		d.WholeSeries = true
		return d
	}

	remaining := 0
	for _, m := range members {
		if m.OccurrenceDate.Before(cutoff) {
			remaining++
			continue
		}
		d.IDs = append(d.IDs, m.Id)
	}

	if head != nil {
		if !head.OccurrenceDate.Before(cutoff) && remaining == 0 {
			d.IDs = append(d.IDs, head.Id)
		} else {
			remaining++
		}
	}

	d.WholeSeries = remaining == 0
	if !d.WholeSeries && head != nil && !head.IsPastEnd(cutoff) {
		end := cutoff
		d.SeriesEnd = &end
	}
	return d
}

func planInstallment(head *transaction.Transaction, members []*transaction.Transaction, target *transaction.Transaction, option CleanupOption) Deletion {
	d := Deletion{IDs: make([]int64, 0, len(members)+1)}

	from := 1
	if option == CleanupFutureOnly && target.InstallmentNumber != nil {
		from = *target.InstallmentNumber
	}

	remaining := 0
	for _, m := range members {
		if m.InstallmentNumber != nil && *m.InstallmentNumber < from {
			remaining++
			continue
		}
		d.IDs = append(d.IDs, m.Id)
	}

	// o template só sai junto com a última parcela; cortar a partir da #1
	// não deixa parcela alguma para ele descrever
	if head != nil && remaining == 0 {
		d.IDs = append(d.IDs, head.Id)
	}

	d.WholeSeries = remaining == 0
	return d
}
