package common

// MessagePublisher is the outbound feed contract. The router publishes
// through it without knowing about kafka.
type MessagePublisher interface {
	Publish(msg []byte) error
}
