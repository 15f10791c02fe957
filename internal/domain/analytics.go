package domain

// Analytics is a fire-and-forget event sink. Capture must never block the
// caller's response path; failures are logged by the implementation and
// not surfaced.
type Analytics interface {
	Capture(event string, properties map[string]any)
}
