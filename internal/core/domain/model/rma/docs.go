// Package rma provides the ReturnRequest aggregate for the fulfillment
// system. It covers the full return pipeline: the customer's request, admin
// review, pickup booking and collection, warehouse inspection, and
// settlement by refund or exchange.
//
// Key business rules:
//   - The refund amount is fixed at filing: 90% of unit price times quantity
//   - Pickups are booked at most PickupWindow ahead
//   - A failed quality check is terminal; the items go back to the customer
//   - Refund-type requests settle with money, exchange-type with a replacement
//   - Every transition appends a line to the admin audit trail
package rma
