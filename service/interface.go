package service

// Service is a long-lived subsystem with an ordered lifecycle
//
// Lifecycle:
//  1. Construction (via factory)
//  2. Init(args...) - configuration and resource acquisition
//  3. Start() - begin operation
//  4. [runtime operation]
//  5. Stop() - release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	Dependencies() []string

	// Init configures the service; args are passed through from Hub.InitAll
	Init(args ...any) error

	// Start begins service operation
	// Called after all services have initialized
	Start() error

	// Stop releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}
