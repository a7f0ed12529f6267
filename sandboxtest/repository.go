package sandboxtest

import (
	"fmt"
	"sync"

	simplify "github.com/simplifycom/simplify-go"
)

var ErrNotFound = fmt.Errorf("not found")

// Repository keeps issued tokens in memory so tests can assert on them.
type Repository struct {
	mu     sync.RWMutex
	tokens []*simplify.CardToken
	index  map[string]*simplify.CardToken
}

func NewRepository() *Repository {
	return &Repository{
		tokens: make([]*simplify.CardToken, 0),
		index:  make(map[string]*simplify.CardToken),
	}
}

func (r *Repository) CreateToken(token *simplify.CardToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[token.ID]; ok {
		return fmt.Errorf("duplicate token id %s", token.ID)
	}
	r.tokens = append(r.tokens, token)
	r.index[token.ID] = token
	return nil
}

func (r *Repository) GetToken(id string) (*simplify.CardToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if token, ok := r.index[id]; ok {
		return token, nil
	}
	return nil, ErrNotFound
}

// MarkUsed flags a token as consumed; a second call fails, enforcing the
// single-use property.
func (r *Repository) MarkUsed(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.index[id]
	if !ok {
		return ErrNotFound
	}
	if token.Used {
		return fmt.Errorf("token %s already used", id)
	}
	token.Used = true
	return nil
}

func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}
