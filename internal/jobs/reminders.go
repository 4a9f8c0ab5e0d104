package jobs

import (
	"context"
	"fmt"

	"github.com/heavyrent/rental-service/internal/domain"
)

const (
	JobPaymentReminder     = "payment_reminder"
	JobRentalStartReminder = "rental_start_reminder"

	startLayout = "2 Jan 15:04 MST"
)

// SendPaymentReminders reminds clients of pending bookings that start within the window
// and have no captured payment.
func (r *Runner) SendPaymentReminders() {
	r.run(JobPaymentReminder, r.sendPaymentReminders)
}

// SendRentalStartReminders reminds both parties of confirmed bookings that start within the window.
func (r *Runner) SendRentalStartReminders() {
	r.run(JobRentalStartReminder, r.sendRentalStartReminders)
}

func (r *Runner) sendPaymentReminders(ctx context.Context) (int, error) {
	now := r.now().UTC()
	bookings, err := r.bookings.ListStartingBetween(ctx, domain.StatusPending, now, now.Add(r.window))
	if err != nil {
		return 0, fmt.Errorf("list pending bookings: %w", err)
	}

	sent := 0
	for _, b := range bookings {
		paid, err := r.payments.HasPaid(ctx, b.ID)
		if err != nil {
			r.logger.Warn("PaymentReminder: failed to check payments of booking id=%s: %v", b.ID, err)
			continue
		}
		if paid {
			continue
		}

		message := fmt.Sprintf("Your booking for %s starts %s. Pay the advance of %.2f to confirm it.",
			r.equipmentName(ctx, b), b.StartTime.Format(startLayout), b.Price.AdvanceAmount)
		r.notifier.Notify(ctx, &domain.Notification{
			RecipientID: b.ClientID,
			Title:       "Payment Pending",
			Message:     message,
			Type:        domain.NotificationPaymentReminder,
			Data:        map[string]string{"booking_id": b.ID.String()},
		})
		sent++
	}
	return sent, nil
}

func (r *Runner) sendRentalStartReminders(ctx context.Context) (int, error) {
	now := r.now().UTC()
	bookings, err := r.bookings.ListStartingBetween(ctx, domain.StatusConfirmed, now, now.Add(r.window))
	if err != nil {
		return 0, fmt.Errorf("list confirmed bookings: %w", err)
	}

	sent := 0
	for _, b := range bookings {
		name := r.equipmentName(ctx, b)
		start := b.StartTime.Format(startLayout)
		data := map[string]string{"booking_id": b.ID.String()}

		r.notifier.Notify(ctx, &domain.Notification{
			RecipientID: b.ClientID,
			Title:       "Rental Starts Soon",
			Message:     fmt.Sprintf("Your rental of %s starts %s at %s.", name, start, b.DeliveryAddress),
			Type:        domain.NotificationRentalReminder,
			Data:        data,
		})
		r.notifier.Notify(ctx, &domain.Notification{
			RecipientID: b.OperatorID,
			Title:       "Dispatch Reminder",
			Message:     fmt.Sprintf("%s is booked from %s. Pickup: %s.", name, start, b.PickupAddress),
			Type:        domain.NotificationRentalReminder,
			Data:        data,
		})
		sent += 2
	}
	return sent, nil
}

func (r *Runner) equipmentName(ctx context.Context, b *domain.Booking) string {
	e, err := r.equipment.GetByID(ctx, b.EquipmentID)
	if err != nil {
		r.logger.Warn("Reminder: failed to load equipment id=%s: %v", b.EquipmentID, err)
		return "your equipment"
	}
	return e.Name
}
