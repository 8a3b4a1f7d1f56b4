// Package agent provides the DeliveryAgent aggregate for the fulfillment
// system. It manages agent eligibility (active and approved flags), the set
// of orders an agent currently carries, and delivery earnings.
//
// Key business rules:
//   - Only active and approved agents accept assignments
//   - The active set is capped; assignments beyond the cap are conflicts
//   - Completing a delivery credits the fee and frees the slot exactly once
//   - Daily earnings are reset by an explicit job, never implicitly
package agent
