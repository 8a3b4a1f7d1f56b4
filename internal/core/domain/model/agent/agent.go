package agent

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// DefaultMaxActiveOrders caps how many orders an agent carries at once when
// no explicit cap is configured.
const DefaultMaxActiveOrders = 10

// Domain errors for delivery agent operations.
var (
	// ErrNameIsRequired is returned when attempting to create an agent without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create an agent without a phone number.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrAgentIsNotConstructed is returned when using an improperly initialized Agent.
	ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent constructor")
	// ErrAgentNotEligible is returned when an inactive or unapproved agent is
	// offered an assignment.
	ErrAgentNotEligible = errors.New("agent is not eligible for assignments")
	// ErrAgentAtCapacity is the sentinel for assignments rejected because the
	// agent already carries the maximum number of active orders.
	ErrAgentAtCapacity = errors.New("agent is at capacity")
)

// AtCapacityError reports an assignment rejected by the active-order cap.
type AtCapacityError struct {
	AgentID kernel.UUID
	Cap     int
}

func (e *AtCapacityError) Error() string {
	return fmt.Sprintf("%s: agent %s carries %d active orders", ErrAgentAtCapacity, e.AgentID, e.Cap)
}

func (e *AtCapacityError) Unwrap() error {
	return ErrAgentAtCapacity
}

// Agent represents a delivery agent in the system.
// It is an aggregate root that manages the agent's eligibility flags, the set
// of orders currently assigned to them, and their delivery earnings.
//
// Business rules:
//   - Only active AND approved agents accept assignments
//   - An agent carries at most maxActiveOrders orders at once
//   - Completing a delivery credits the delivery fee, increments the
//     completed-deliveries counter and frees the active slot, exactly once
//   - todayEarnings is reset by an external daily job, never implicitly
type Agent struct {
	// id uniquely identifies the agent
	id kernel.UUID
	// name is the human-readable name of the agent
	name string
	// phone is the agent's contact number, used for dispatch notifications
	phone string
	// isActive marks agents currently on duty
	isActive bool
	// isApproved marks agents vetted by operations
	isApproved bool
	// activeOrders are the orders currently assigned to the agent
	activeOrders []kernel.UUID
	// maxActiveOrders caps the active set
	maxActiveOrders int
	// completedDeliveries counts lifetime completed deliveries
	completedDeliveries int
	// totalEarnings is the lifetime delivery fee total
	totalEarnings kernel.Money
	// todayEarnings is the delivery fee total since the last daily reset
	todayEarnings kernel.Money
	// guard ensures the agent was properly constructed
	guard guard.ConstructorGuard
}

// NewAgent creates a new Agent with the specified parameters.
// This is the only way to create a valid Agent instance.
//
// New agents start active but unapproved: they cannot take assignments until
// operations approves them. A non-positive maxActiveOrders falls back to
// DefaultMaxActiveOrders.
//
// Parameters:
//   - id: Unique identifier for the agent (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - phone: Contact number (must be non-empty)
//   - maxActiveOrders: Active-order cap, or <=0 for the default
func NewAgent(id kernel.UUID, name, phone string, maxActiveOrders int) (*Agent, error) {
	agent := &Agent{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		agent.setID(id),
		agent.setName(name),
		agent.setPhone(phone),
	); err != nil {
		return nil, err
	}

	if maxActiveOrders <= 0 {
		maxActiveOrders = DefaultMaxActiveOrders
	}
	agent.maxActiveOrders = maxActiveOrders
	agent.isActive = true
	agent.totalEarnings = kernel.ZeroMoney()
	agent.todayEarnings = kernel.ZeroMoney()

	return agent, nil
}

// RestoreAgentParams carries the full persisted state of an agent for
// reconstruction by the repository layer.
type RestoreAgentParams struct {
	ID                  kernel.UUID
	Name                string
	Phone               string
	IsActive            bool
	IsApproved          bool
	ActiveOrders        []kernel.UUID
	MaxActiveOrders     int
	CompletedDeliveries int
	TotalEarnings       kernel.Money
	TodayEarnings       kernel.Money
}

// RestoreAgent reconstructs an Agent aggregate from persistent storage.
// The restored agent carries exactly the persisted state, including its
// active-order set and earnings counters.
func RestoreAgent(params RestoreAgentParams) (*Agent, error) {
	agent := &Agent{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		agent.setID(params.ID),
		agent.setName(params.Name),
		agent.setPhone(params.Phone),
	); err != nil {
		return nil, err
	}

	if params.MaxActiveOrders <= 0 {
		params.MaxActiveOrders = DefaultMaxActiveOrders
	}
	if params.CompletedDeliveries < 0 {
		return nil, errs.NewValueIsInvalidError("completed deliveries")
	}
	for _, orderID := range params.ActiveOrders {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}

	agent.isActive = params.IsActive
	agent.isApproved = params.IsApproved
	agent.activeOrders = make([]kernel.UUID, len(params.ActiveOrders))
	copy(agent.activeOrders, params.ActiveOrders)
	agent.maxActiveOrders = params.MaxActiveOrders
	agent.completedDeliveries = params.CompletedDeliveries
	agent.totalEarnings = params.TotalEarnings
	agent.todayEarnings = params.TodayEarnings

	return agent, nil
}

// IsEqual compares two agents by their unique identifiers.
func (a *Agent) IsEqual(other *Agent) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// Validate checks if the Agent was properly constructed.
func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

// ID returns the unique identifier of the agent.
func (a *Agent) ID() kernel.UUID {
	return a.id
}

// Name returns the human-readable name of the agent.
func (a *Agent) Name() string {
	return a.name
}

// Phone returns the agent's contact number.
func (a *Agent) Phone() string {
	return a.phone
}

// IsActive reports whether the agent is currently on duty.
func (a *Agent) IsActive() bool {
	return a.isActive
}

// IsApproved reports whether operations has vetted the agent.
func (a *Agent) IsApproved() bool {
	return a.isApproved
}

// ActiveOrders returns the orders currently assigned to the agent.
// The returned slice is a copy to prevent external modification.
func (a *Agent) ActiveOrders() []kernel.UUID {
	out := make([]kernel.UUID, len(a.activeOrders))
	copy(out, a.activeOrders)
	return out
}

// MaxActiveOrders returns the active-order cap.
func (a *Agent) MaxActiveOrders() int {
	return a.maxActiveOrders
}

// CompletedDeliveries returns the lifetime completed-delivery count.
func (a *Agent) CompletedDeliveries() int {
	return a.completedDeliveries
}

// TotalEarnings returns the lifetime delivery fee total.
func (a *Agent) TotalEarnings() kernel.Money {
	return a.totalEarnings
}

// TodayEarnings returns the delivery fee total since the last daily reset.
func (a *Agent) TodayEarnings() kernel.Money {
	return a.todayEarnings
}

// Approve marks the agent as vetted by operations.
func (a *Agent) Approve() {
	a.isApproved = true
}

// Activate puts the agent on duty.
func (a *Agent) Activate() {
	a.isActive = true
}

// Deactivate takes the agent off duty. Orders already assigned stay assigned;
// reassigning them is an operational decision, not an automatic one.
func (a *Agent) Deactivate() {
	a.isActive = false
}

// ValidateCanAccept checks whether the agent may take one more order.
//
// Returns:
//   - ErrAgentNotEligible if the agent is inactive or unapproved
//   - *AtCapacityError if the active set is full
//   - nil otherwise
func (a *Agent) ValidateCanAccept() error {
	if !a.isActive || !a.isApproved {
		return ErrAgentNotEligible
	}
	if len(a.activeOrders) >= a.maxActiveOrders {
		return &AtCapacityError{AgentID: a.id, Cap: a.maxActiveOrders}
	}
	return nil
}

// AcceptOrder adds an order to the agent's active set.
//
// Business rules:
//   - The agent must be active, approved and under capacity
//   - An order already in the active set is rejected as a conflict
func (a *Agent) AcceptOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := a.ValidateCanAccept(); err != nil {
		return err
	}
	if a.carries(orderID) {
		return errs.NewConflictError("agent assignment", fmt.Sprintf("order %s is already assigned to agent %s", orderID, a.id))
	}

	a.activeOrders = append(a.activeOrders, orderID)
	return nil
}

// ReleaseOrder removes an order from the agent's active set without crediting
// anything, for example when the order is reassigned or cancelled.
func (a *Agent) ReleaseOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if !a.carries(orderID) {
		return errs.NewObjectNotFoundError("orderId", orderID.String())
	}

	a.removeActive(orderID)
	return nil
}

// CompleteDelivery credits a finished delivery.
//
// Business rules:
//   - The order must be in the agent's active set; this makes the credit
//     exactly-once, since completion removes it
//   - The fee is added to both totalEarnings and todayEarnings
//   - completedDeliveries increments by one
func (a *Agent) CompleteDelivery(orderID kernel.UUID, fee kernel.Money) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if !a.carries(orderID) {
		return errs.NewObjectNotFoundError("orderId", orderID.String())
	}

	a.removeActive(orderID)
	a.completedDeliveries++
	a.totalEarnings = a.totalEarnings.Add(fee)
	a.todayEarnings = a.todayEarnings.Add(fee)
	return nil
}

// ResetTodayEarnings zeroes the daily earnings counter. Invoked by the
// midnight reset job; lifetime totals are untouched.
func (a *Agent) ResetTodayEarnings() {
	a.todayEarnings = kernel.ZeroMoney()
}

// carries reports whether the order is in the active set.
func (a *Agent) carries(orderID kernel.UUID) bool {
	for _, id := range a.activeOrders {
		if id.IsEqual(orderID) {
			return true
		}
	}
	return false
}

// removeActive removes the order from the active set, preserving order.
func (a *Agent) removeActive(orderID kernel.UUID) {
	for i, id := range a.activeOrders {
		if id.IsEqual(orderID) {
			a.activeOrders = append(a.activeOrders[:i], a.activeOrders[i+1:]...)
			return
		}
	}
}

// setID sets the agent's unique identifier with validation.
func (a *Agent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

// setName sets the agent's name with validation.
func (a *Agent) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	a.name = name
	return nil
}

// setPhone sets the agent's contact number with validation.
func (a *Agent) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	a.phone = phone
	return nil
}
