package naming

import (
	"sync"
)

// Claims tracks which input owns each path a conversion will write. Two
// sources in one directory can map to the same output (photo.jpg and
// photo.png both produce photo.jxl), and a WebP's intermediate can land on
// another source file (img.webp decodes to img.png). The first claimant keeps
// the path; later ones are refused. All methods are goroutine-safe.
type Claims struct {
	mu     sync.Mutex
	owners map[string]string // written path → input path that owns it
}

// NewClaims creates a ready-to-use registry.
func NewClaims() *Claims {
	return &Claims{owners: make(map[string]string)}
}

// Reserve marks input as an existing file that must never be overwritten by
// another input's output. It returns the current owner when the path is
// already claimed by someone else.
func (c *Claims) Reserve(input string) (owner string, ok bool) {
	return c.Claim(input, input)
}

// Claim records that input will write path. It succeeds when path is
// unclaimed or already owned by input; otherwise it returns the owner.
func (c *Claims) Claim(input, path string) (owner string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, exists := c.owners[path]
	if !exists || current == input {
		c.owners[path] = input
		return input, true
	}
	return current, false
}

// ClaimAll claims every path for input, or none of them. On conflict it
// returns the first owner found.
func (c *Claims) ClaimAll(input string, paths ...string) (owner string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range paths {
		if current, exists := c.owners[p]; exists && current != input {
			return current, false
		}
	}
	for _, p := range paths {
		c.owners[p] = input
	}
	return input, true
}

// Owner returns the input that claimed path, if any.
func (c *Claims) Owner(path string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	owner, ok := c.owners[path]
	return owner, ok
}
