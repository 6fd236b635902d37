// Package dispatch routes inbound admin envelopes through a sealed
// registry.Catalogue: type resolution, schema decoding, the admin capability
// gate and handler execution.
package dispatch
