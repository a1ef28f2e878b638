package reminder

import (
	"context"
	"strconv"
	"time"

	"Cashline/internal/logger"
	"Cashline/internal/pkg/money"

	"github.com/google/uuid"
)

// Payload acompanha cada pedido de lembrete. RequestId é determinístico por
// ocorrência e horário, o que permite ao destino descartar duplicatas.
type Payload struct {
	RequestId    uuid.UUID   `json:"requestId"`
	OccurrenceId int64       `json:"occurrenceId"`
	SeriesId     *int64      `json:"seriesId,omitempty"`
	Title        string      `json:"title"`
	AmountCents  money.Cents `json:"amountCents"`
	Type         string      `json:"type"`
}

// Notifier é a porta para o agendador de notificações do sistema.
type Notifier interface {
	RequestReminder(ctx context.Context, occurrenceID int64, fireDate time.Time, payload Payload) error
	CancelReminder(ctx context.Context, occurrenceID int64) error
	CancelRemindersForSeries(ctx context.Context, parentID int64) error
}

var requestNamespace = uuid.MustParse("6f1c2f0e-54a4-4c55-9b0c-3f5d8c2b9a11")

func RequestID(occurrenceID int64, fireDate time.Time) uuid.UUID {
	key := fireDate.UTC().Format(time.RFC3339) + "#" + strconv.FormatInt(occurrenceID, 10)
	return uuid.NewSHA1(requestNamespace, []byte(key))
}

// LogNotifier registra os pedidos no log estruturado. Serve como adaptador
// padrão enquanto não há entrega real de notificações.
type LogNotifier struct{}

func (LogNotifier) RequestReminder(_ context.Context, occurrenceID int64, fireDate time.Time, payload Payload) error {
	logger.Info().
		Int64("occurrence_id", occurrenceID).
		Time("fire_at", fireDate).
		Str("request_id", payload.RequestId.String()).
		Str("title", payload.Title).
		Str("amount", payload.AmountCents.String()).
		Str("type", payload.Type).
		Msg("Lembrete agendado")
	return nil
}

func (LogNotifier) CancelReminder(_ context.Context, occurrenceID int64) error {
	logger.Info().Int64("occurrence_id", occurrenceID).Msg("Lembrete cancelado")
	return nil
}

func (LogNotifier) CancelRemindersForSeries(_ context.Context, parentID int64) error {
	logger.Info().Int64("series_id", parentID).Msg("Lembretes da série cancelados")
	return nil
}
