// Package kitchen implements the order-fulfillment engine of the bistro.
//
// # Overview
//
// A Kitchen session owns three things:
//
//   - Registry: the ordered workstations, each with assigned menu items and local stock
//   - BackupInventory: the shared pool stations draw from when they run short
//   - OrderQueue: the FIFO of orders waiting to be prepared
//
// ProcessAll drains the queue. For each head order the stations are tried in
// registry order. A station that has the item assigned but lacks one of its
// ingredients is topped up from the backup pool by exactly the deficit before
// it prepares. Orders no station can prepare go back to the tail.
//
// # Termination
//
// The first order deferred since the last success is remembered. When it
// reaches the head again without anything being prepared in between, a full
// pass made no progress and the loop stops with outcome DrainOutcomeHalted.
// Every success forgets the remembered order.
//
// # Capability
//
// Workstation.CanFulfill is a presence check: the item is assigned and every
// required ingredient is in stock, regardless of quantity. Workstation.Prepare
// compares quantities and is all-or-nothing. CanCommit answers the
// quantity-aware question without preparing.
//
// # Errors
//
// Operations return *KitchenError values classified by ErrorKind. Match them
// with errors.Is against ErrNotFound, ErrInsufficientQuantity,
// ErrInvalidArgument, ErrDuplicateAssignment and ErrDuplicateStation, or with
// the IsNotFound family of helpers.
package kitchen
