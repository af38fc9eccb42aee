package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is compared against when the user does not exist so a failed
// login costs the same either way.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("flightbooking-dummy-password"), bcrypt.DefaultCost)

type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches hashed. An empty hash is checked
// against a dummy value and never matches.
func (h *PasswordHasher) Verify(hashed, password string) bool {
	if hashed == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
