package security

import "golang.org/x/crypto/bcrypt"

// PINHasher stores PINs as salted bcrypt hashes instead of plaintext.
type PINHasher struct {
	cost int
}

func NewPINHasher() *PINHasher {
	return &PINHasher{cost: bcrypt.DefaultCost}
}

// NewPINHasherWithCost is for tests, where the default cost is slow.
func NewPINHasherWithCost(cost int) *PINHasher {
	return &PINHasher{cost: cost}
}

func (h *PINHasher) Hash(pin string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), h.cost)
	return string(bytes), err
}

func (h *PINHasher) Compare(hash, pin string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin))
}
