// Package order contains the Order aggregate and its supporting value
// objects for the production fulfillment domain.
//
// An Order groups line items by the production team responsible for
// them (glass, caps, boxes, pumps). Teams report partial completion
// quantities in batches; the aggregate validates each batch against the
// outstanding quantities, records an append-only completion history per
// item, and promotes the order to Completed once every item of every
// team has been fully produced.
//
// All state changes go through validated aggregate methods; batches are
// applied atomically so a single over-reported quantity rejects the
// whole batch.
package order
