package statehub

// Client is one live session stream of a device.
type Client interface {
	// GetDeviceID returns the device the stream was opened for.
	GetDeviceID() string
	// GetUID returns the UID of the current session, or "" when signed out.
	GetUID() string
	// Refresh asks the client to fetch the profile uid again. It must not block.
	Refresh(uid string)
	// Poke asks the client to recompute and push its frame. It must not block.
	Poke()

	// Run starts the client's pumps.
	Run()
	// Close stops the client. It is safe to call more than once.
	Close()
}
