package dto

// Identity is what the identity provider vouches for on each request.
type Identity struct {
	UserID  string
	Name    string
	Email   string
	Picture string
}
