// Package kernel provides core domain primitives for the FreshDrop platform.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - ZipCode: A value object for the five-digit postal codes that key service areas
//   - TimeWindow: A value object for half-open pickup/delivery time intervals
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel
