package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIdentityNormalizedEmail(t *testing.T) {
	id := Identity{ID: "u1", Email: "  Rafael_Apodaca@Hotmail.com "}
	assert.Equal(t, "rafael_apodaca@hotmail.com", id.NormalizedEmail())
}

func TestSessionIdentity(t *testing.T) {
	s := Session{ID: "sess", UserID: "u1", Email: "a@b.mx"}
	assert.Equal(t, Identity{ID: "u1", Email: "a@b.mx"}, s.Identity())
}

func TestSessionExpiresWithin(t *testing.T) {
	s := Session{ExpiresAt: time.Now().Add(10 * time.Minute)}
	assert.True(t, s.ExpiresWithin(30*time.Minute))
	assert.False(t, s.ExpiresWithin(time.Minute))
}
