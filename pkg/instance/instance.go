package instance

import "github.com/angelmondragon/tastybytes-dashboard/pkg/env"

// GetID returns the serving instance identifier: an explicit override, the platform
// dyno name, the host name, or "local".
func GetID() string {
	return env.First("local", "TASTYBYTES_INSTANCE_ID", "DYNO", "HOSTNAME")
}
