// Package chat holds the relay core: the connection and room registries,
// the broadcast dispatcher, and the event router. It speaks to clients only
// through the Conn interface, so the websocket transport (and tests) plug
// in from the outside.
package chat
