package app

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewCertificateID produces a human-presentable certificate token:
// CERT-<millisecond timestamp in base36>-<7 random base36 characters>,
// uppercased. Uniqueness needs no coordination; the timestamp plus
// 36^7 suffix space makes collisions negligible for this use.
func NewCertificateID() string {
	return token("CERT", 7)
}

// newAttemptID mints in-process attempt handles with the same scheme.
func newAttemptID() string {
	return token("ATT", 5)
}

func token(prefix string, randLen int) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := make([]byte, randLen)
	for i := range suffix {
		suffix[i] = base36[rand.Intn(len(base36))]
	}
	return strings.ToUpper(prefix + "-" + ts + "-" + string(suffix))
}
