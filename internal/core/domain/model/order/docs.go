// Package order provides domain entities and business logic for laundry order
// management. It implements the Order aggregate root with lifecycle management
// and state transitions.
//
// The package includes:
//   - Order: The aggregate root managing identity, pricing, scheduling, and lifecycle
//   - Status: A state machine enforcing valid order status transitions
//   - PickupType: The locker vs. pickup/delivery classification
//   - LineItem: One component of the itemized price breakdown
//
// Key business rules:
//   - Orders follow the workflow placed -> unclaimed -> claimed -> in_progress ->
//     washed -> out_for_delivery -> completed, one forward step at a time
//   - Cancellation is possible up to and including the claimed status; the refund
//     percentage depends on whether an operator had already claimed the order
//   - Orders fail only pre-claim, on payment expiry
//   - An operator reference exists exactly when the status requires one
//   - The stored total is always reproducible from the stored line items
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
