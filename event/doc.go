// Package event implements the event data plane: the PCKN note-addressing
// model, the typed core events, ordered event list views, and the
// sample-accurate batching iterator.
//
// Event lists come in two flavors. InputEvents is a read-only, borrowed view
// over an ordered list provided by the other side of the protocol;
// OutputEvents is the matching append-only view. Neither owns storage.
// EventBuffer is the owned, growable backing store for heterogeneous events
// and can lend itself out as either view.
//
// Ordering within a list is a contract on the provider: event times must be
// non-decreasing. Consumers in this package tolerate violations instead of
// relying on them; see Batcher for the documented out-of-order behavior.
//
// # Batching
//
// Batcher partitions an ordered list by exact time equality and pairs each
// group with the half-open sample interval it covers, so a plugin can
// process audio in sample-accurate slices between events:
//
//	batcher := in.Batch()
//	for {
//		batch, ok := batcher.Next()
//		if !ok {
//			break
//		}
//		// render [batch.FirstSample(), batch.NextSample()) then apply events
//	}
package event
