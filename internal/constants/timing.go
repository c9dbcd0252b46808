package constants

import "time"

// Console loop timing defaults. The first three are overridable through config.ConsoleConfig.
const (
	// KeyMonitorTick is how often the key monitor polls the key-state capability
	KeyMonitorTick = 50 * time.Millisecond

	// FlusherTick is how often the output flusher re-checks the queue without a wake-up signal
	FlusherTick = 50 * time.Millisecond

	// SyncPollInterval is how often a synchronous dispatch checks whether its task finished
	SyncPollInterval = 100 * time.Millisecond

	// ReleasePollInterval is the sub-tick used while waiting for a held key to be released
	ReleasePollInterval = 10 * time.Millisecond

	// TestSleepDelay is the standard delay in tests for timing-sensitive operations
	TestSleepDelay = 100 * time.Millisecond
)
