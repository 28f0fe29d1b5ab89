// Package services contains pure domain services for the order fulfillment
// core: the price calculator, the eligibility validator, and the window
// scheduler. Each is a deterministic function of its inputs with no I/O and
// no side effects; expected business denials (area not serviced, cutoff
// passed, lead time too short) are typed results, not errors.
//
// These services gate and shape order placement. The application layer
// resolves their inputs (service area, promotion, current local time) and
// composes their outputs into the Order aggregate.
package services
