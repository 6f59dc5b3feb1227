// Package sms implements the one-time-code channel. Codes are short
// uppercase words stored in redis under a TTL so a separate delivery
// worker (or a support operator) can rendezvous with them; the channel
// itself only guarantees a code value the caller can compare against.
package sms

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dquesada/tellercore-backend/internal/domain"
)

const (
	alphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	minLetters = 3
	maxLetters = 7
)

// DefaultTTL is how long an issued code stays retrievable.
const DefaultTTL = 5 * time.Minute

// Channel issues confirmation codes for phone numbers, keeping the
// live copy in redis under otp:<phone>.
type Channel struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewChannel creates a redis-backed code channel.
func NewChannel(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Channel {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Channel{rdb: rdb, ttl: ttl, logger: logger}
}

// SendCode generates a code, stores it under the phone number with a
// TTL, and returns it for comparison against caller input.
func (c *Channel) SendCode(ctx context.Context, phone string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("%w: code generation: %v", domain.ErrCollaboratorUnavailable, err)
	}
	key := "otp:" + phone
	if err := c.rdb.Set(ctx, key, code, c.ttl).Err(); err != nil {
		return "", fmt.Errorf("%w: code channel: %v", domain.ErrCollaboratorUnavailable, err)
	}
	c.logger.Info("confirmation code issued",
		zap.String("phone", phone),
		zap.Duration("ttl", c.ttl),
	)
	return code, nil
}

// generateCode builds a random uppercase word of 3 to 7 letters, the
// shape the delivery side expects.
func generateCode() (string, error) {
	span, err := rand.Int(rand.Reader, big.NewInt(maxLetters-minLetters+1))
	if err != nil {
		return "", err
	}
	length := minLetters + int(span.Int64())
	out := make([]byte, length)
	for i := range out {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
