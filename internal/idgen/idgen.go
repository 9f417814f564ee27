// Package idgen produces human-readable submission identifiers of the form
// TAG-YYYYMMDD-XXXXX.
package idgen

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"
)

const (
	TagApplication = "APP"
	TagProject     = "PROJ"

	alphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffixLen  = 5
	dateLayout = "20060102"
)

// Generator is safe for concurrent use. Uniqueness is probabilistic
// (36^5 suffixes per tag per day); callers rely on the store's unique index.
type Generator struct {
	now    func() time.Time
	random io.Reader
}

func New(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return NewWithSource(now, rand.Reader)
}

// NewWithSource draws suffix characters from r instead of crypto/rand.
func NewWithSource(now func() time.Time, r io.Reader) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now, random: r}
}

func (g *Generator) Generate(tag string) (string, error) {
	suffix := make([]byte, suffixLen)
	max := big.NewInt(int64(len(alphabet)))
	for i := range suffix {
		n, err := rand.Int(g.random, max)
		if err != nil {
			return "", fmt.Errorf("idgen: %w", err)
		}
		suffix[i] = alphabet[n.Int64()]
	}
	return fmt.Sprintf("%s-%s-%s", tag, g.now().Format(dateLayout), suffix), nil
}
