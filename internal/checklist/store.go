package checklist

// Store keys.
const (
	KeyRows     = "rows"
	KeyProgress = "progress"
)

// Store is a synchronous string key-value store that outlives the process.
// Get reports found=false for a key that was never written.
type Store interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
}
