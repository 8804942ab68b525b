package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type Producer struct {
	l                *slog.Logger
	w                *kafka.Writer
	invoicePaidTopic string
}

func NewProducer(l *slog.Logger, brokers []string, topic string) *Producer {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "",
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:                l,
		w:                w,
		invoicePaidTopic: topic,
	}
}

type InvoicePaidEvent struct {
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	ClientID      uuid.UUID       `json:"client_id"`
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Currency      string          `json:"currency"`
	PaidAt        time.Time       `json:"paid_at"`
}

// InvoicePaid publishes a paid-invoice event. Delivery is fire-and-forget:
// failures are logged and never surface to the caller.
func (p *Producer) InvoicePaid(
	ctx context.Context,
	invoiceID, clientID uuid.UUID,
	number string,
	total decimal.Decimal,
	currency string,
	paidAt time.Time,
) {
	event := InvoicePaidEvent{
		InvoiceID:     invoiceID,
		ClientID:      clientID,
		InvoiceNumber: number,
		TotalAmount:   total,
		Currency:      currency,
		PaidAt:        paidAt,
	}

	b, err := json.Marshal(event)
	if err != nil {
		p.l.Error(fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(invoiceID.String()),
		Value: b,
		Topic: p.invoicePaidTopic,
	})
	if err != nil {
		p.l.Error(fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}

type infoLogger struct {
	l *slog.Logger
}

func (l *infoLogger) Printf(format string, v ...any) {
	l.l.Info(fmt.Sprintf(format, v...))
}

type errorLogger struct {
	l *slog.Logger
}

func (l *errorLogger) Printf(format string, v ...any) {
	l.l.Error(fmt.Sprintf(format, v...))
}
