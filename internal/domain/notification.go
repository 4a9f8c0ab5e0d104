package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationBookingRequest   NotificationType = "booking_request"
	NotificationBookingConfirmed NotificationType = "booking_confirmed"
	NotificationBookingActive    NotificationType = "booking_active"
	NotificationBookingCompleted NotificationType = "booking_completed"
	NotificationBookingCancelled NotificationType = "booking_cancelled"
	NotificationPaymentSuccess   NotificationType = "payment_success"
	NotificationPaymentReminder  NotificationType = "payment_reminder"
	NotificationRentalReminder   NotificationType = "rental_reminder"
)

// NotificationTypeForStatus maps a booking status change to the notification sent to the counterparty.
func NotificationTypeForStatus(status BookingStatus) (NotificationType, bool) {
	switch status {
	case StatusConfirmed:
		return NotificationBookingConfirmed, true
	case StatusActive:
		return NotificationBookingActive, true
	case StatusCompleted:
		return NotificationBookingCompleted, true
	case StatusCancelled:
		return NotificationBookingCancelled, true
	}
	return "", false
}

type Notification struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
	Title       string
	Message     string
	Type        NotificationType
	Data        map[string]string
	Read        bool
	CreatedAt   time.Time
}
