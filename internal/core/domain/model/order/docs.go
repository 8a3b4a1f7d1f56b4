// Package order provides domain entities and business logic for order
// management in the fulfillment system. It implements the Order aggregate
// root with lifecycle management, the delivery OTP protocol and the
// append-only status history.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, items, pricing and lifecycle
//   - Status: A state machine that enforces valid fulfillment transitions
//   - Item: An order line carrying the catalog snapshot taken at order time
//   - OTP: The one-time codes for assignment and proof of delivery
//
// Key business rules:
//   - The status chain only ever moves forward; Delivered is reachable solely
//     through delivery OTP verification while OutForDelivery
//   - Shipped and later orders cannot be cancelled
//   - COD orders are capped by the COD ceiling; online orders require settled payment
//   - The status history is append-only and insertion-ordered
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
