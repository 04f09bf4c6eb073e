package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/biosecret/todopages/models"
)

// Sink nhận sự kiện todo đã qua kiểm tra tuỳ chọn thông báo
type Sink interface {
	Publish(ctx context.Context, ev models.Event) error
}

// Preferences đọc cờ notifications_enabled của người dùng
type Preferences interface {
	NotificationsEnabled(ctx context.Context, userID int64) (bool, error)
}

// Broker chuyển sự kiện tới các sink nếu người dùng bật thông báo
type Broker struct {
	prefs Preferences
	sinks []Sink
	log   zerolog.Logger
}

func NewBroker(prefs Preferences, log zerolog.Logger, sinks ...Sink) *Broker {
	return &Broker{prefs: prefs, sinks: sinks, log: log}
}

// Notify không trả lỗi; lỗi của sink chỉ được ghi log
func (b *Broker) Notify(ctx context.Context, ev models.Event) {
	if len(b.sinks) == 0 {
		return
	}

	enabled, err := b.prefs.NotificationsEnabled(ctx, ev.UserID)
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", ev.UserID).Msg("could not read notification preference")
		return
	}
	if !enabled {
		return
	}

	for _, sink := range b.sinks {
		if err := sink.Publish(ctx, ev); err != nil {
			b.log.Warn().Err(err).
				Str("kind", string(ev.Kind)).
				Int64("todo_id", ev.TodoID).
				Msg("failed to deliver todo event")
		}
	}
}
