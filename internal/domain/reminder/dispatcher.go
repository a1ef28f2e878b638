package reminder

import (
	"context"
	"sync"
	"time"

	"Cashline/config"
	"Cashline/internal/domain/transaction"
	"Cashline/internal/logger"
)

type operation int

const (
	opRequest operation = iota
	opCancel
	opCancelSeries
)

type job struct {
	ctx          context.Context
	op           operation
	occurrenceID int64
	seriesID     int64
	fireDate     time.Time
	payload      Payload
}

// Dispatcher entrega pedidos ao Notifier em segundo plano. Enfileirar nunca
// bloqueia: com a fila cheia o pedido é descartado e registrado. Cada worker
// tem a própria fila e os pedidos de uma ocorrência vão sempre para a mesma,
// então agendar e cancelar o mesmo id chegam ao Notifier na ordem de chamada.
type Dispatcher struct {
	notifier Notifier
	hour     int
	workers  int

	queues []chan job
	wg     sync.WaitGroup

	mu      sync.RWMutex
	started bool
	closed  bool
}

var _ transaction.ReminderScheduler = (*Dispatcher)(nil)

func NewDispatcher(notifier Notifier, cfg config.ReminderConfig) *Dispatcher {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	size := cfg.QueueSize
	if size < 1 {
		size = 1
	}
	queues := make([]chan job, workers)
	for i := range queues {
		queues[i] = make(chan job, size)
	}
	return &Dispatcher{
		notifier: notifier,
		hour:     cfg.Hour,
		workers:  workers,
		queues:   queues,
	}
}

func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.closed {
		return
	}
	d.started = true

	for _, q := range d.queues {
		d.wg.Add(1)
		go d.run(q)
	}

	logger.Info().Int("workers", d.workers).Msg("Despachante de lembretes iniciado")
}

// Stop fecha a fila e aguarda os pedidos pendentes até o prazo de ctx.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	for _, q := range d.queues {
		close(q)
	}
	started := d.started
	d.mu.Unlock()

	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.Warn().Msg("Despachante de lembretes encerrado com pedidos pendentes")
		return ctx.Err()
	}
}

func (d *Dispatcher) Schedule(ctx context.Context, items ...*transaction.Transaction) {
	for _, t := range items {
		if t == nil || t.Id == 0 || !t.IsVisible() {
			continue
		}
		fire := FireDate(t.OccurrenceDate, d.hour)
		var series *int64
		if id, ok := t.SeriesID(); ok {
			series = &id
		}
		d.enqueue(job{
			ctx:          ctx,
			op:           opRequest,
			occurrenceID: t.Id,
			fireDate:     fire,
			payload: Payload{
				RequestId:    RequestID(t.Id, fire),
				OccurrenceId: t.Id,
				SeriesId:     series,
				Title:        t.Title,
				AmountCents:  t.AmountCents,
				Type:         string(t.Type),
			},
		})
	}
}

func (d *Dispatcher) Cancel(ctx context.Context, ids ...int64) {
	for _, id := range ids {
		d.enqueue(job{ctx: ctx, op: opCancel, occurrenceID: id})
	}
}

func (d *Dispatcher) CancelSeries(ctx context.Context, seriesID int64) {
	d.enqueue(job{ctx: ctx, op: opCancelSeries, seriesID: seriesID})
}

func (d *Dispatcher) enqueue(j job) {
	// o pedido sobrevive ao fim da requisição que o originou
	j.ctx = context.WithoutCancel(j.ctx)

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		logger.Warn().Int64("occurrence_id", j.occurrenceID).Msg("Despachante encerrado, lembrete descartado")
		return
	}

	select {
	case d.queueFor(j) <- j:
	default:
		logger.Warn().
			Int64("occurrence_id", j.occurrenceID).
			Int64("series_id", j.seriesID).
			Msg("Fila de lembretes cheia, pedido descartado")
	}
}

// queueFor escolhe a fila pela ocorrência. O cancelamento da série pode
// correr em outra fila; a exclusão cancela também cada id removido.
func (d *Dispatcher) queueFor(j job) chan job {
	key := j.occurrenceID
	if j.op == opCancelSeries {
		key = j.seriesID
	}
	if key < 0 {
		key = -key
	}
	return d.queues[key%int64(len(d.queues))]
}

func (d *Dispatcher) run(queue <-chan job) {
	defer d.wg.Done()
	for j := range queue {
		d.handle(j)
	}
}

func (d *Dispatcher) handle(j job) {
	var err error
	switch j.op {
	case opRequest:
		err = d.notifier.RequestReminder(j.ctx, j.occurrenceID, j.fireDate, j.payload)
	case opCancel:
		err = d.notifier.CancelReminder(j.ctx, j.occurrenceID)
	case opCancelSeries:
		err = d.notifier.CancelRemindersForSeries(j.ctx, j.seriesID)
	}
	if err != nil {
		logger.Error().
			Err(err).
			Int64("occurrence_id", j.occurrenceID).
			Int64("series_id", j.seriesID).
			Msg("Falha ao entregar pedido de lembrete")
		return
	}
	logger.Debug().
		Int64("occurrence_id", j.occurrenceID).
		Int64("series_id", j.seriesID).
		Msg("Pedido de lembrete entregue")
}

// FireDate posiciona o lembrete no horário configurado do dia da ocorrência.
func FireDate(date time.Time, hour int) time.Time {
	y, m, day := date.Date()
	return time.Date(y, m, day, hour, 0, 0, 0, time.UTC)
}
