package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"cleanhome/internal/domain"
	"cleanhome/internal/metrics"
	"cleanhome/internal/pricing"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationBookingCreated   NotificationType = "BOOKING_CREATED"
	NotificationBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationJobStarted       NotificationType = "JOB_STARTED"
	NotificationJobCompleted     NotificationType = "JOB_COMPLETED"
	NotificationBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationNoShow           NotificationType = "NO_SHOW"
	NotificationPaymentSuccess   NotificationType = "PAYMENT_SUCCESS"
	NotificationPaymentFailed    NotificationType = "PAYMENT_FAILED"
	NotificationReceiptReady     NotificationType = "RECEIPT_READY"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery. Delivery is a log line;
// push/email channels plug in behind send.
type NotificationService struct {
	now func() time.Time
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{now: time.Now}
}

// NotifyBookingCreated tells the cleaner about a new booking request.
func (s *NotificationService) NotifyBookingCreated(ctx context.Context, b *domain.Booking) error {
	return s.send(ctx, Notification{
		Type:        NotificationBookingCreated,
		RecipientID: b.CleanerID,
		Title:       "New Booking Request",
		Message:     fmt.Sprintf("New booking on %s at %s (%.1fh)", b.ScheduledDate.Format(domain.DateLayout), b.ScheduledTime, b.Duration),
		Data: map[string]interface{}{
			"booking_id":  b.ID,
			"total_price": b.TotalPrice,
		},
	})
}

// NotifyTransition tells the other party that a booking changed status.
// actor is the role of the caller who performed the action.
func (s *NotificationService) NotifyTransition(ctx context.Context, b *domain.Booking, action domain.Action, actor domain.Role) error {
	recipientID := b.CustomerID
	if actor == domain.RoleCustomer {
		recipientID = b.CleanerID
	}

	n := Notification{
		RecipientID: recipientID,
		Data: map[string]interface{}{
			"booking_id": b.ID,
			"status":     b.Status,
		},
	}

	switch action {
	case domain.ActionConfirm:
		n.Type = NotificationBookingConfirmed
		n.Title = "Booking Confirmed"
		n.Message = fmt.Sprintf("Your cleaning on %s at %s is confirmed", b.ScheduledDate.Format(domain.DateLayout), b.ScheduledTime)
	case domain.ActionStart:
		n.Type = NotificationJobStarted
		n.Title = "Cleaning Started"
		n.Message = "Your cleaner has started the job."
	case domain.ActionComplete:
		n.Type = NotificationJobCompleted
		n.Title = "Cleaning Completed"
		n.Message = fmt.Sprintf("Your cleaning is done. Total: %s RON", pricing.FormatAmount(b.TotalPrice))
	case domain.ActionCancel:
		n.Type = NotificationBookingCancelled
		n.Title = "Booking Cancelled"
		n.Message = fmt.Sprintf("The booking on %s was cancelled (%s)", b.ScheduledDate.Format(domain.DateLayout), b.CancellationReason)
		n.Data["reason"] = b.CancellationReason
		n.Data["cancelled_by"] = b.CancelledByRole
	case domain.ActionNoShow:
		n.Type = NotificationNoShow
		n.Title = "Missed Appointment"
		n.Message = "The cleaner could not access the property and marked the booking as no-show."
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownAction, action)
	}

	return s.send(ctx, n)
}

// NotifyPaymentSuccess notifies the customer of a successful payment.
func (s *NotificationService) NotifyPaymentSuccess(ctx context.Context, payment *domain.Payment, customerID string) error {
	return s.send(ctx, Notification{
		Type:        NotificationPaymentSuccess,
		RecipientID: customerID,
		Title:       "Payment Successful",
		Message:     fmt.Sprintf("Payment of %s RON was successful", pricing.FormatAmount(payment.Amount)),
		Data: map[string]interface{}{
			"payment_id": payment.ID,
			"amount":     payment.Amount,
		},
	})
}

// NotifyPaymentFailed notifies the customer of a failed payment.
func (s *NotificationService) NotifyPaymentFailed(ctx context.Context, payment *domain.Payment, customerID string) error {
	return s.send(ctx, Notification{
		Type:        NotificationPaymentFailed,
		RecipientID: customerID,
		Title:       "Payment Failed",
		Message:     fmt.Sprintf("Payment of %s RON failed. Please update your payment method.", pricing.FormatAmount(payment.Amount)),
		Data: map[string]interface{}{
			"payment_id": payment.ID,
			"amount":     payment.Amount,
		},
	})
}

// NotifyReceiptReady notifies the customer that the receipt is ready.
func (s *NotificationService) NotifyReceiptReady(ctx context.Context, receipt *domain.Receipt) error {
	return s.send(ctx, Notification{
		Type:        NotificationReceiptReady,
		RecipientID: receipt.CustomerID,
		Title:       "Receipt Ready",
		Message:     fmt.Sprintf("Your receipt for %s RON is ready", pricing.FormatAmount(receipt.TotalPrice)),
		Data: map[string]interface{}{
			"receipt_id":  receipt.ID,
			"booking_id":  receipt.BookingID,
			"total_price": receipt.TotalPrice,
		},
	})
}

// send delivers a notification.
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	if notification.RecipientID == "" {
		return nil
	}
	notification.CreatedAt = s.now()

	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)
	metrics.RecordNotification(string(notification.Type))

	return nil
}
