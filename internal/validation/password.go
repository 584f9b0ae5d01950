package validation

const (
	MinPasswordLength = 8
	MaxPasswordLength = 32
)

// IsValidPasswordLength checks the [8,32] length bounds the auth endpoints
// enforce before touching credentials.
func IsValidPasswordLength(password string) bool {
	return len(password) >= MinPasswordLength && len(password) <= MaxPasswordLength
}
