// Package reference issues short human readable quote references.
package reference

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/sqids/sqids-go"
)

// Alphabet omits characters that are easy to misread over the phone.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Generator encodes a timestamp and a random component with sqids.
type Generator struct {
	codec  *sqids.Sqids
	prefix string
	now    func() time.Time
}

// New returns a generator whose references start with prefix.
func New(prefix string) (*Generator, error) {
	codec, err := sqids.New(sqids.Options{
		Alphabet:  Alphabet,
		MinLength: 8,
	})
	if err != nil {
		return nil, fmt.Errorf("reference: sqids: %w", err)
	}
	return &Generator{codec: codec, prefix: prefix, now: time.Now}, nil
}

// Next returns a new reference.
func (g *Generator) Next() (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("reference: random: %w", err)
	}
	ts := uint64(g.now().Unix())
	id, err := g.codec.Encode([]uint64{ts, uint64(binary.BigEndian.Uint32(buf[:]))})
	if err != nil {
		return "", fmt.Errorf("reference: encode: %w", err)
	}
	return g.prefix + id, nil
}

// Decode returns the issue time encoded in ref.
func (g *Generator) Decode(ref string) (time.Time, error) {
	if len(ref) < len(g.prefix) || ref[:len(g.prefix)] != g.prefix {
		return time.Time{}, fmt.Errorf("reference: %q lacks prefix %q", ref, g.prefix)
	}
	numbers := g.codec.Decode(ref[len(g.prefix):])
	if len(numbers) != 2 {
		return time.Time{}, fmt.Errorf("reference: %q is not a quote reference", ref)
	}
	return time.Unix(int64(numbers[0]), 0).UTC(), nil
}
