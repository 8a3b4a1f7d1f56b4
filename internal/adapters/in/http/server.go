// Package http provides the inbound HTTP adapter.
//
// Server exposes the fulfillment use cases as a JSON API over echo. Route
// handlers translate requests into commands and queries, hand them to the
// application layer, and map domain errors onto HTTP status codes. No
// business rules live here.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const pickupDateLayout = "2006-01-02"

// Error is the JSON error body returned on every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server implements the HTTP API over the application use cases.
// It coordinates between HTTP handlers and command/query handlers.
type Server struct {
	// Command handlers
	createOrderHandler        commands.CreateOrderCommandHandler
	cancelOrderHandler        commands.CancelOrderCommandHandler
	transitionStatusHandler   commands.TransitionStatusCommandHandler
	assignDeliveryHandler     commands.AssignDeliveryCommandHandler
	unassignDeliveryHandler   commands.UnassignDeliveryCommandHandler
	issueDeliveryOTPHandler   commands.IssueDeliveryOTPCommandHandler
	verifyDeliveryOTPHandler  commands.VerifyDeliveryOTPCommandHandler
	initiateReturnHandler     commands.InitiateReturnCommandHandler
	reviewReturnHandler       commands.ReviewReturnCommandHandler
	schedulePickupHandler     commands.SchedulePickupCommandHandler
	advancePickupHandler      commands.AdvancePickupCommandHandler
	recordQualityCheckHandler commands.RecordQualityCheckCommandHandler
	settleReturnHandler       commands.SettleReturnCommandHandler
	cancelReturnHandler       commands.CancelReturnCommandHandler

	// Query handlers
	trackOrderHandler       queries.TrackOrderQueryHandler
	getAgentEarningsHandler queries.GetAgentEarningsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	transitionStatusHandler commands.TransitionStatusCommandHandler,
	assignDeliveryHandler commands.AssignDeliveryCommandHandler,
	unassignDeliveryHandler commands.UnassignDeliveryCommandHandler,
	issueDeliveryOTPHandler commands.IssueDeliveryOTPCommandHandler,
	verifyDeliveryOTPHandler commands.VerifyDeliveryOTPCommandHandler,
	initiateReturnHandler commands.InitiateReturnCommandHandler,
	reviewReturnHandler commands.ReviewReturnCommandHandler,
	schedulePickupHandler commands.SchedulePickupCommandHandler,
	advancePickupHandler commands.AdvancePickupCommandHandler,
	recordQualityCheckHandler commands.RecordQualityCheckCommandHandler,
	settleReturnHandler commands.SettleReturnCommandHandler,
	cancelReturnHandler commands.CancelReturnCommandHandler,
	trackOrderHandler queries.TrackOrderQueryHandler,
	getAgentEarningsHandler queries.GetAgentEarningsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		cancelOrderHandler:        cancelOrderHandler,
		transitionStatusHandler:   transitionStatusHandler,
		assignDeliveryHandler:     assignDeliveryHandler,
		unassignDeliveryHandler:   unassignDeliveryHandler,
		issueDeliveryOTPHandler:   issueDeliveryOTPHandler,
		verifyDeliveryOTPHandler:  verifyDeliveryOTPHandler,
		initiateReturnHandler:     initiateReturnHandler,
		reviewReturnHandler:       reviewReturnHandler,
		schedulePickupHandler:     schedulePickupHandler,
		advancePickupHandler:      advancePickupHandler,
		recordQualityCheckHandler: recordQualityCheckHandler,
		settleReturnHandler:       settleReturnHandler,
		cancelReturnHandler:       cancelReturnHandler,
		trackOrderHandler:         trackOrderHandler,
		getAgentEarningsHandler:   getAgentEarningsHandler,
	}
}

// RegisterRoutes mounts every API route on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.POST("/orders/:orderID/status", s.TransitionStatus)
	api.POST("/orders/:orderID/assign", s.AssignDelivery)
	api.POST("/orders/:orderID/unassign", s.UnassignDelivery)
	api.POST("/orders/:orderID/delivery-otp", s.IssueDeliveryOTP)
	api.POST("/orders/:orderID/delivery-otp/verify", s.VerifyDeliveryOTP)
	api.GET("/orders/track/:orderNumber", s.TrackOrder)

	api.POST("/orders/:orderID/returns", s.InitiateReturn)
	api.POST("/orders/:orderID/returns/:returnID/review", s.ReviewReturn)
	api.POST("/orders/:orderID/returns/:returnID/quality-check", s.RecordQualityCheck)
	api.POST("/orders/:orderID/returns/:returnID/settle", s.SettleReturn)
	api.POST("/orders/:orderID/returns/:returnID/cancel", s.CancelReturn)
	api.POST("/returns/:returnID/pickup/schedule", s.SchedulePickup)
	api.POST("/returns/:returnID/pickup/advance", s.AdvancePickup)

	api.GET("/agents/:agentID/earnings", s.GetAgentEarnings)
}

// NewOrderLine is one requested line of a new order.
type NewOrderLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// NewOrder is the request body for placing an order.
type NewOrder struct {
	CustomerID     string         `json:"customer_id"`
	Lines          []NewOrderLine `json:"lines"`
	DeliveryCharge float64        `json:"delivery_charge"`
	Tax            float64        `json:"tax"`
	Discount       float64        `json:"discount"`
	CouponDiscount float64        `json:"coupon_discount"`
	PaymentMethod  string         `json:"payment_method"`
	PaymentRef     string         `json:"payment_ref"`
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(body.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	lines := make([]commands.OrderLine, len(body.Lines))
	for i, line := range body.Lines {
		productID, lineErr := kernel.UUIDFromString(line.ProductID)
		if lineErr != nil {
			return badRequest(ctx, "Invalid product id: "+lineErr.Error())
		}
		lines[i] = commands.OrderLine{ProductID: productID, Quantity: line.Quantity}
	}

	paymentMethod, err := order.PaymentMethodFromString(body.PaymentMethod)
	if err != nil {
		return badRequest(ctx, "Invalid payment method: "+err.Error())
	}

	var deliveryCharge, tax, discount, couponDiscount kernel.Money
	if err = errors.Join(
		assignMoney(&deliveryCharge, body.DeliveryCharge),
		assignMoney(&tax, body.Tax),
		assignMoney(&discount, body.Discount),
		assignMoney(&couponDiscount, body.CouponDiscount),
	); err != nil {
		return badRequest(ctx, "Invalid amount: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, lines,
		deliveryCharge, tax, discount, couponDiscount,
		paymentMethod, body.PaymentRef,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"order_id": orderID.String()})
}

// CancelOrderRequest is the request body for cancelling an order.
type CancelOrderRequest struct {
	Reason      string `json:"reason"`
	CancelledBy string `json:"cancelled_by"`
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body CancelOrderRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, body.Reason, body.CancelledBy)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation data: "+err.Error())
	}

	if handleErr := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionStatusRequest is the request body for moving an order forward.
type TransitionStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// TransitionStatus handles POST /api/v1/orders/:orderID/status.
func (s *Server) TransitionStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body TransitionStatusRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(body.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewTransitionStatusCommand(orderID, target, body.Note)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	if handleErr := s.transitionStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignDeliveryRequest is the request body for assigning a delivery agent.
type AssignDeliveryRequest struct {
	AgentID string `json:"agent_id"`
}

// AssignDelivery handles POST /api/v1/orders/:orderID/assign.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body AssignDeliveryRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	agentID, err := kernel.UUIDFromString(body.AgentID)
	if err != nil {
		return badRequest(ctx, "Invalid agent id: "+err.Error())
	}

	cmd, err := commands.NewAssignDeliveryCommand(orderID, agentID)
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	if handleErr := s.assignDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UnassignDelivery handles POST /api/v1/orders/:orderID/unassign.
func (s *Server) UnassignDelivery(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewUnassignDeliveryCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	if handleErr := s.unassignDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// IssueDeliveryOTP handles POST /api/v1/orders/:orderID/delivery-otp.
func (s *Server) IssueDeliveryOTP(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewIssueDeliveryOTPCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	if handleErr := s.issueDeliveryOTPHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// VerifyDeliveryOTPRequest is the request body for confirming a delivery.
type VerifyDeliveryOTPRequest struct {
	Code string `json:"code"`
}

// VerifyDeliveryOTP handles POST /api/v1/orders/:orderID/delivery-otp/verify.
func (s *Server) VerifyDeliveryOTP(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body VerifyDeliveryOTPRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewVerifyDeliveryOTPCommand(orderID, body.Code)
	if err != nil {
		return badRequest(ctx, "Invalid code: "+err.Error())
	}

	if handleErr := s.verifyDeliveryOTPHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TrackedOrder is the read model returned by order tracking.
type TrackedOrder struct {
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	TotalAmount float64         `json:"total_amount"`
	AgentName   string          `json:"agent_name,omitempty"`
	AgentPhone  string          `json:"agent_phone,omitempty"`
	DeliveredAt *time.Time      `json:"delivered_at,omitempty"`
	Timeline    []TimelineEntry `json:"timeline"`
}

// TimelineEntry is one status change in a tracked order's history.
type TimelineEntry struct {
	Status string    `json:"status"`
	Note   string    `json:"note,omitempty"`
	At     time.Time `json:"at"`
}

// TrackOrder handles GET /api/v1/orders/track/:orderNumber.
func (s *Server) TrackOrder(ctx echo.Context) error {
	query, err := queries.NewTrackOrderQuery(ctx.Param("orderNumber"))
	if err != nil {
		return badRequest(ctx, "Invalid order number: "+err.Error())
	}

	result, err := s.trackOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	timeline := make([]TimelineEntry, len(result.Timeline))
	for i, entry := range result.Timeline {
		timeline[i] = TimelineEntry{Status: entry.Status, Note: entry.Note, At: entry.At}
	}

	return ctx.JSON(http.StatusOK, TrackedOrder{
		OrderID:     result.OrderID.String(),
		OrderNumber: result.OrderNumber,
		Status:      result.Status,
		TotalAmount: result.TotalAmount,
		AgentName:   result.AgentName,
		AgentPhone:  result.AgentPhone,
		DeliveredAt: result.DeliveredAt,
		Timeline:    timeline,
	})
}

// NewExchange carries replacement details for an exchange-type return.
type NewExchange struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// NewReturn is the request body for filing a return.
type NewReturn struct {
	OrderItemID  string       `json:"order_item_id"`
	CustomerID   string       `json:"customer_id"`
	Reason       string       `json:"reason"`
	Description  string       `json:"description"`
	Type         string       `json:"type"`
	Quantity     int          `json:"quantity"`
	RefundMethod string       `json:"refund_method"`
	Exchange     *NewExchange `json:"exchange,omitempty"`
}

// InitiateReturn handles POST /api/v1/orders/:orderID/returns.
func (s *Server) InitiateReturn(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body NewReturn
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderItemID, err := kernel.UUIDFromString(body.OrderItemID)
	if err != nil {
		return badRequest(ctx, "Invalid order item id: "+err.Error())
	}
	customerID, err := kernel.UUIDFromString(body.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	reason, err := rma.ReasonFromString(body.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid reason: "+err.Error())
	}
	returnType, err := rma.TypeFromString(body.Type)
	if err != nil {
		return badRequest(ctx, "Invalid return type: "+err.Error())
	}
	refundMethod, err := rma.RefundMethodFromString(body.RefundMethod)
	if err != nil {
		return badRequest(ctx, "Invalid refund method: "+err.Error())
	}

	var exchange *commands.ExchangeDetails
	if body.Exchange != nil {
		productID, exchangeErr := kernel.UUIDFromString(body.Exchange.ProductID)
		if exchangeErr != nil {
			return badRequest(ctx, "Invalid exchange product id: "+exchangeErr.Error())
		}
		exchange = &commands.ExchangeDetails{
			ProductID: productID,
			Size:      body.Exchange.Size,
			Color:     body.Exchange.Color,
		}
	}

	returnID := kernel.NewUUID()
	cmd, err := commands.NewInitiateReturnCommand(
		returnID, orderID, orderItemID, customerID,
		reason, body.Description, returnType, body.Quantity, refundMethod, exchange,
	)
	if err != nil {
		return badRequest(ctx, "Invalid return data: "+err.Error())
	}

	if handleErr := s.initiateReturnHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"return_id": returnID.String()})
}

// ReviewReturnRequest is the request body for the admin review decision.
type ReviewReturnRequest struct {
	Approve         bool   `json:"approve"`
	RejectionReason string `json:"rejection_reason"`
	ReviewedBy      string `json:"reviewed_by"`
}

// ReviewReturn handles POST /api/v1/orders/:orderID/returns/:returnID/review.
func (s *Server) ReviewReturn(ctx echo.Context) error {
	orderID, returnID, err := pathOrderAndReturn(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body ReviewReturnRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReviewReturnCommand(orderID, returnID, body.Approve, body.RejectionReason, body.ReviewedBy)
	if err != nil {
		return badRequest(ctx, "Invalid review data: "+err.Error())
	}

	if handleErr := s.reviewReturnHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SchedulePickupRequest is the request body for booking a return pickup.
type SchedulePickupRequest struct {
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
	By       string `json:"by"`
}

// SchedulePickup handles POST /api/v1/returns/:returnID/pickup/schedule.
func (s *Server) SchedulePickup(ctx echo.Context) error {
	returnID, err := pathUUID(ctx, "returnID")
	if err != nil {
		return badRequest(ctx, "Invalid return id")
	}

	var body SchedulePickupRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	date, err := time.Parse(pickupDateLayout, body.Date)
	if err != nil {
		return badRequest(ctx, "Invalid pickup date, expected YYYY-MM-DD")
	}

	cmd, err := commands.NewSchedulePickupCommand(returnID, date, body.TimeSlot, body.By)
	if err != nil {
		return badRequest(ctx, "Invalid pickup data: "+err.Error())
	}

	if handleErr := s.schedulePickupHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvancePickupRequest is the request body for one step of the pickup leg.
type AdvancePickupRequest struct {
	Action  string `json:"action"`
	AgentID string `json:"agent_id"`
	By      string `json:"by"`
}

// AdvancePickup handles POST /api/v1/returns/:returnID/pickup/advance.
func (s *Server) AdvancePickup(ctx echo.Context) error {
	returnID, err := pathUUID(ctx, "returnID")
	if err != nil {
		return badRequest(ctx, "Invalid return id")
	}

	var body AdvancePickupRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var agentID *kernel.UUID
	if body.AgentID != "" {
		parsed, agentErr := kernel.UUIDFromString(body.AgentID)
		if agentErr != nil {
			return badRequest(ctx, "Invalid agent id: "+agentErr.Error())
		}
		agentID = &parsed
	}

	cmd, err := commands.NewAdvancePickupCommand(returnID, commands.PickupAction(body.Action), agentID, body.By)
	if err != nil {
		return badRequest(ctx, "Invalid pickup step: "+err.Error())
	}

	if handleErr := s.advancePickupHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// QualityCheckRequest is the request body for the warehouse inspection verdict.
type QualityCheckRequest struct {
	Passed bool   `json:"passed"`
	Notes  string `json:"notes"`
	By     string `json:"by"`
}

// RecordQualityCheck handles POST /api/v1/orders/:orderID/returns/:returnID/quality-check.
func (s *Server) RecordQualityCheck(ctx echo.Context) error {
	orderID, returnID, err := pathOrderAndReturn(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body QualityCheckRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordQualityCheckCommand(orderID, returnID, body.Passed, body.Notes, body.By)
	if err != nil {
		return badRequest(ctx, "Invalid quality check data: "+err.Error())
	}

	if handleErr := s.recordQualityCheckHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SettleReturnRequest is the request body for one settlement step.
type SettleReturnRequest struct {
	Action string `json:"action"`
	By     string `json:"by"`
}

// SettleReturn handles POST /api/v1/orders/:orderID/returns/:returnID/settle.
func (s *Server) SettleReturn(ctx echo.Context) error {
	orderID, returnID, err := pathOrderAndReturn(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body SettleReturnRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSettleReturnCommand(orderID, returnID, commands.SettleAction(body.Action), body.By)
	if err != nil {
		return badRequest(ctx, "Invalid settlement step: "+err.Error())
	}

	if handleErr := s.settleReturnHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelReturnRequest is the request body for withdrawing a return.
type CancelReturnRequest struct {
	By string `json:"by"`
}

// CancelReturn handles POST /api/v1/orders/:orderID/returns/:returnID/cancel.
func (s *Server) CancelReturn(ctx echo.Context) error {
	orderID, returnID, err := pathOrderAndReturn(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body CancelReturnRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelReturnCommand(orderID, returnID, body.By)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation data: "+err.Error())
	}

	if handleErr := s.cancelReturnHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AgentEarnings is the read model returned for an agent's earnings.
type AgentEarnings struct {
	AgentID             string  `json:"agent_id"`
	Name                string  `json:"name"`
	CompletedDeliveries int     `json:"completed_deliveries"`
	TotalEarnings       float64 `json:"total_earnings"`
	TodayEarnings       float64 `json:"today_earnings"`
	ActiveOrders        int     `json:"active_orders"`
}

// GetAgentEarnings handles GET /api/v1/agents/:agentID/earnings.
func (s *Server) GetAgentEarnings(ctx echo.Context) error {
	agentID, err := pathUUID(ctx, "agentID")
	if err != nil {
		return badRequest(ctx, "Invalid agent id")
	}

	query, err := queries.NewGetAgentEarningsQuery(agentID)
	if err != nil {
		return badRequest(ctx, "Invalid agent id: "+err.Error())
	}

	result, err := s.getAgentEarningsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AgentEarnings{
		AgentID:             result.AgentID.String(),
		Name:                result.Name,
		CompletedDeliveries: result.CompletedDeliveries,
		TotalEarnings:       result.TotalEarnings,
		TodayEarnings:       result.TodayEarnings,
		ActiveOrders:        result.ActiveOrders,
	})
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func pathOrderAndReturn(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("Invalid order id")
	}
	returnID, err := pathUUID(ctx, "returnID")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("Invalid return id")
	}
	return orderID, returnID, nil
}

func assignMoney(dst *kernel.Money, amount float64) error {
	m, err := kernel.NewMoneyFromFloat(amount)
	if err != nil {
		return err
	}
	*dst = m
	return nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps an application-layer failure onto an HTTP status.
// Validation errors from commands are handled before Handle is called, so
// everything arriving here came out of the domain or the infrastructure.
func domainError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrPreconditionFailed),
		errors.Is(err, product.ErrInsufficientStock),
		errors.Is(err, agent.ErrAgentNotEligible),
		errors.Is(err, agent.ErrAgentAtCapacity),
		errors.Is(err, order.ErrOTPExpired),
		errors.Is(err, order.ErrOTPAttemptsExceeded),
		errors.Is(err, order.ErrOTPCodeMismatch):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrOTPRateLimited):
		code = http.StatusTooManyRequests
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrExternalFailure):
		code = http.StatusBadGateway
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}
