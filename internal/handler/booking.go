package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cleanhome/internal/domain"
	"cleanhome/internal/pricing"
	"cleanhome/internal/service"
)

// BookingHandler handles HTTP requests for bookings and their lifecycle.
type BookingHandler struct {
	bookingService   *service.BookingService
	lifecycleService *service.LifecycleService
	receiptService   *service.ReceiptService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(
	bookingService *service.BookingService,
	lifecycleService *service.LifecycleService,
	receiptService *service.ReceiptService,
) *BookingHandler {
	return &BookingHandler{
		bookingService:   bookingService,
		lifecycleService: lifecycleService,
		receiptService:   receiptService,
	}
}

// CompleteBookingRequest is the HTTP request body for completing a job.
type CompleteBookingRequest struct {
	Notes string `json:"notes"`
}

// BookingResponse is the HTTP representation of a booking.
type BookingResponse struct {
	ID                 string     `json:"id"`
	CustomerID         string     `json:"customer_id"`
	CleanerID          string     `json:"cleaner_id"`
	CleanerTier        string     `json:"cleaner_tier"`
	LocationSizeID     string     `json:"location_size_id"`
	ServiceID          string     `json:"service_id"`
	ServiceType        string     `json:"service_type"`
	Frequency          string     `json:"frequency"`
	AddOnIDs           []string   `json:"add_on_ids"`
	ScheduledDate      string     `json:"scheduled_date"`
	ScheduledTime      string     `json:"scheduled_time"`
	Duration           float64    `json:"duration"`
	AddressID          string     `json:"address_id"`
	CleanerHourlyRate  int64      `json:"cleaner_hourly_rate"`
	ServicePrice       int64      `json:"service_price"`
	AddOnsPrice        int64      `json:"add_ons_price"`
	TravelFee          int64      `json:"travel_fee"`
	PlatformFee        int64      `json:"platform_fee"`
	TotalPrice         int64      `json:"total_price"`
	TotalPriceText     string     `json:"total_price_text"`
	CleanerPayout      int64      `json:"cleaner_payout"`
	Status             string     `json:"status"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancellationNote   string     `json:"cancellation_note,omitempty"`
	CancelledBy        string     `json:"cancelled_by,omitempty"`
	CustomerNotes      string     `json:"customer_notes,omitempty"`
	CleanerNotes       string     `json:"cleaner_notes,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// BookingDetailResponse is a booking with its breakdown and the caller's actions.
type BookingDetailResponse struct {
	Booking      BookingResponse    `json:"booking"`
	Subtotal     int64              `json:"subtotal"`
	SubtotalText string             `json:"subtotal_text"`
	Actions      domain.Affordances `json:"actions"`
}

// BookingListResponse is the upcoming/past split of the caller's bookings.
type BookingListResponse struct {
	Upcoming []BookingResponse `json:"upcoming"`
	Past     []BookingResponse `json:"past"`
}

// ReceiptResponse is the HTTP representation of a receipt.
type ReceiptResponse struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"booking_id"`
	ServiceName   string    `json:"service_name"`
	Address       string    `json:"address"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Duration      float64   `json:"duration"`
	ServicePrice  int64     `json:"service_price"`
	AddOnsPrice   int64     `json:"add_ons_price"`
	TravelFee     int64     `json:"travel_fee"`
	Subtotal      int64     `json:"subtotal"`
	PlatformFee   int64     `json:"platform_fee"`
	TotalPrice    int64     `json:"total_price"`
	TotalText     string    `json:"total_text"`
	CleanerPayout int64     `json:"cleaner_payout"`
	PaymentStatus string    `json:"payment_status,omitempty"`
	Status        string    `json:"status"`
	Text          string    `json:"text"`
}

// CompletionResponse is a completed booking with its payment outcome.
type CompletionResponse struct {
	Booking       BookingResponse  `json:"booking"`
	PaymentID     string           `json:"payment_id,omitempty"`
	PaymentStatus string           `json:"payment_status"`
	Receipt       *ReceiptResponse `json:"receipt,omitempty"`
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	addOns := b.AddOnIDs
	if addOns == nil {
		addOns = []string{}
	}
	return BookingResponse{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		CleanerID:          b.CleanerID,
		CleanerTier:        string(b.CleanerTier),
		LocationSizeID:     b.LocationSizeID,
		ServiceID:          b.ServiceID,
		ServiceType:        string(b.ServiceType),
		Frequency:          string(b.Frequency),
		AddOnIDs:           addOns,
		ScheduledDate:      b.ScheduledDate.Format(domain.DateLayout),
		ScheduledTime:      b.ScheduledTime,
		Duration:           b.Duration,
		AddressID:          b.AddressID,
		CleanerHourlyRate:  b.CleanerHourlyRate,
		ServicePrice:       b.ServicePrice,
		AddOnsPrice:        b.AddOnsPrice,
		TravelFee:          b.TravelFee,
		PlatformFee:        b.PlatformFee,
		TotalPrice:         b.TotalPrice,
		TotalPriceText:     pricing.FormatAmount(b.TotalPrice),
		CleanerPayout:      b.CleanerPayout,
		Status:             string(b.Status),
		CancellationReason: string(b.CancellationReason),
		CancellationNote:   b.CancellationNote,
		CancelledBy:        string(b.CancelledByRole),
		CustomerNotes:      b.CustomerNotes,
		CleanerNotes:       b.CleanerNotes,
		ConfirmedAt:        optionalTime(b.ConfirmedAt),
		StartedAt:          optionalTime(b.StartedAt),
		CompletedAt:        optionalTime(b.CompletedAt),
		CancelledAt:        optionalTime(b.CancelledAt),
		CreatedAt:          b.CreatedAt,
	}
}

func toBookingResponses(bookings []*domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}

func (h *BookingHandler) toReceiptResponse(r *domain.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		ID:            r.ID,
		BookingID:     r.BookingID,
		ServiceName:   r.ServiceName,
		Address:       r.Address,
		ScheduledAt:   r.ScheduledAt,
		Duration:      r.Duration,
		ServicePrice:  r.ServicePrice,
		AddOnsPrice:   r.AddOnsPrice,
		TravelFee:     r.TravelFee,
		Subtotal:      r.Subtotal,
		PlatformFee:   r.PlatformFee,
		TotalPrice:    r.TotalPrice,
		TotalText:     pricing.FormatAmount(r.TotalPrice),
		CleanerPayout: r.CleanerPayout,
		PaymentStatus: string(r.PaymentStatus),
		Status:        string(r.Status),
		Text:          h.receiptService.FormatReceipt(r),
	}
}

// Create handles POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var req domain.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), s, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Location", "/v1/bookings/"+booking.ID)
	respondJSON(c, http.StatusCreated, toBookingResponse(booking))
}

// List handles GET /v1/bookings?status=&limit=&offset=
func (h *BookingHandler) List(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var filter domain.BookingFilter
	if raw := c.Query("status"); raw != "" {
		status, valid := domain.ParseBookingStatus(strings.ToUpper(raw))
		if !valid {
			badRequest(c, "unknown booking status")
			return
		}
		filter.Status = &status
	}
	var err error
	if filter.Limit, err = strconv.Atoi(c.DefaultQuery("limit", "50")); err != nil || filter.Limit < 0 {
		badRequest(c, "limit must be a non-negative integer")
		return
	}
	if filter.Offset, err = strconv.Atoi(c.DefaultQuery("offset", "0")); err != nil || filter.Offset < 0 {
		badRequest(c, "offset must be a non-negative integer")
		return
	}

	list, err := h.bookingService.ListBookings(c.Request.Context(), s, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, BookingListResponse{
		Upcoming: toBookingResponses(list.Upcoming),
		Past:     toBookingResponses(list.Past),
	})
}

// Counts handles GET /v1/bookings/counts
func (h *BookingHandler) Counts(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	counts, err := h.bookingService.BadgeCounts(c.Request.Context(), s)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make(map[string]int, len(counts))
	for status, n := range counts {
		out[string(status)] = n
	}
	respondJSON(c, http.StatusOK, gin.H{"counts": out})
}

// Get handles GET /v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	v, err := h.bookingService.GetBooking(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, BookingDetailResponse{
		Booking:      toBookingResponse(v.Booking),
		Subtotal:     v.Subtotal,
		SubtotalText: pricing.FormatAmount(v.Subtotal),
		Actions:      v.Actions,
	})
}

// Receipt handles GET /v1/bookings/:id/receipt
func (h *BookingHandler) Receipt(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	receipt, err := h.bookingService.Receipt(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, h.toReceiptResponse(receipt))
}

// Confirm handles POST /v1/bookings/:id/confirm
func (h *BookingHandler) Confirm(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	b, err := h.lifecycleService.Confirm(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBookingResponse(b))
}

// Start handles POST /v1/bookings/:id/start
func (h *BookingHandler) Start(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	b, err := h.lifecycleService.Start(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBookingResponse(b))
}

// Complete handles POST /v1/bookings/:id/complete
func (h *BookingHandler) Complete(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	// The body is optional.
	var req CompleteBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
	}

	result, err := h.lifecycleService.Complete(c.Request.Context(), s, c.Param("id"), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := CompletionResponse{
		Booking:       toBookingResponse(result.Booking),
		PaymentStatus: string(domain.PaymentStatusFailed),
	}
	if result.Payment != nil {
		resp.PaymentID = result.Payment.ID
		resp.PaymentStatus = string(result.Payment.Status)
	}
	if result.Receipt != nil {
		resp.Receipt = h.toReceiptResponse(result.Receipt)
	}
	respondJSON(c, http.StatusOK, resp)
}

// Cancel handles POST /v1/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var req service.CancelInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	b, err := h.lifecycleService.Cancel(c.Request.Context(), s, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBookingResponse(b))
}

// NoShow handles POST /v1/bookings/:id/no-show
func (h *BookingHandler) NoShow(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	b, err := h.lifecycleService.MarkNoShow(c.Request.Context(), s, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBookingResponse(b))
}
