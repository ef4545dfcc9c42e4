// Package msgs provides the L1 protocol and all message schemas.
//
// L1 messages travel between a motor board (L1 controller) and a
// supervisor (L2), independent of the transport. Every message is
// wrapped in a Typed envelope carrying its type ID and, for commands,
// a sequence number correlating replies.
package msgs
