package occupancy

import (
	"context"

	"github.com/1122padelclub/padel-app-sub002/internal/integrations/events"
)

// Watch подписывается на изменения бронирований и сбрасывает снапшоты заведения
// Блокируется до отмены ctx
func (s *Service) Watch(ctx context.Context, subscriber Subscriber) error {
	unsubscribe, err := subscriber.Subscribe(ctx, func(_ context.Context, event events.ReservationChanged) {
		s.metrics.RecordEvent("received")
		s.Invalidate(event.VenueID)
		s.logger.Info("Watch: reservation=%s venue=%s changed to %s, snapshot invalidated",
			event.ReservationID, event.VenueID, event.Status)
	})
	if err != nil {
		return err
	}
	defer unsubscribe()

	s.logger.Info("Watch: listening for reservation changes")
	<-ctx.Done()
	return nil
}
