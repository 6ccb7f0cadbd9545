// Package events defines the simulation related events emitted on the event bus.
//
// Available event types:
//   - PositionEvent: vehicle moved to a new grid cell
//   - FaultEvent: vehicle failed during a rental
//   - ReceiptEvent: a rental finished and produced a receipt
package events
