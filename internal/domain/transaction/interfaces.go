package transaction

import "context"

// ReminderScheduler agenda e cancela lembretes de ocorrências. As chamadas não
// retornam erro: falhas de agendamento nunca afetam a operação principal.
type ReminderScheduler interface {
	Schedule(ctx context.Context, items ...*Transaction)
	Cancel(ctx context.Context, ids ...int64)
	CancelSeries(ctx context.Context, seriesID int64)
}

type NoopScheduler struct{}

func (NoopScheduler) Schedule(context.Context, ...*Transaction) {}
func (NoopScheduler) Cancel(context.Context, ...int64)          {}
func (NoopScheduler) CancelSeries(context.Context, int64)       {}
