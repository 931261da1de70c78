package redis

const (
	// KeyPrefix namespaces every shell state key
	KeyPrefix = "cfxlookup:state:"
)

// StateKey returns the Redis key for a shell state key
func StateKey(key string) string {
	return KeyPrefix + key
}
