package persist

import "fmt"

// Cache key namespaces (§6).
func MemoryKey(sessionID string) string { return fmt.Sprintf("agent:memory:%s", sessionID) }
func MemoryKeyPattern(sessionID string) string { return fmt.Sprintf("agent:memory:%s*", sessionID) }
func IntentKey(hash string) string { return fmt.Sprintf("agent:intent:%s", hash) }
func PlacesKey(hash string) string { return fmt.Sprintf("agent:places:%s", hash) }
