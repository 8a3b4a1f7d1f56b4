package services

import (
	"time"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// DeliveryAssigner is a domain service coordinating the Order and Agent
// aggregates during assignment. Neither aggregate knows about the other's
// invariants: the order tracks who carries it, the agent tracks what it
// carries, and this service keeps the two in step.
//
// Business rules:
//   - Only active, approved agents below capacity take assignments
//   - Reassignment frees the previous agent's slot first
//   - Unassignment frees the slot without crediting any delivery fee
type DeliveryAssigner struct{}

// NewDeliveryAssigner creates a new DeliveryAssigner instance.
func NewDeliveryAssigner() DeliveryAssigner {
	return DeliveryAssigner{}
}

// Assign puts newAgent on the order. If the order already has an agent,
// previous must be that agent and its slot is released first; otherwise
// previous must be nil.
//
// Both aggregates change together: the caller persists them in one unit of
// work or not at all.
func (d DeliveryAssigner) Assign(o *order.Order, newAgent, previous *agent.Agent, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := newAgent.Validate(); err != nil {
		return err
	}

	if err := d.checkPrevious(o, previous); err != nil {
		return err
	}

	if err := newAgent.ValidateCanAccept(); err != nil {
		return err
	}

	if previous != nil {
		if err := previous.ReleaseOrder(o.ID()); err != nil {
			return err
		}
	}

	if err := o.AssignAgent(newAgent.ID(), now); err != nil {
		return err
	}

	return newAgent.AcceptOrder(o.ID())
}

// Unassign takes the order away from its current agent and frees the slot.
// assigned must be the agent the order currently names.
func (d DeliveryAssigner) Unassign(o *order.Order, assigned *agent.Agent, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := assigned.Validate(); err != nil {
		return err
	}

	if o.Agent() == nil || !o.Agent().IsEqual(assigned.ID()) {
		return errs.NewPreconditionFailedError("unassign agent not carrying the order", o.Status().String())
	}

	if err := o.UnassignAgent(now); err != nil {
		return err
	}

	return assigned.ReleaseOrder(o.ID())
}

func (d DeliveryAssigner) checkPrevious(o *order.Order, previous *agent.Agent) error {
	if o.Agent() == nil {
		if previous != nil {
			return errs.NewPreconditionFailedError("release agent from unassigned order", o.Status().String())
		}
		return nil
	}

	if previous == nil || !o.Agent().IsEqual(previous.ID()) {
		return errs.NewPreconditionFailedError("reassign without releasing the current agent", o.Status().String())
	}
	return nil
}
