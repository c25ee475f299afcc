package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"DouDizhu/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidTicket = errors.New("invalid ticket")
	ErrNoSecret      = errors.New("ticket secret is not configured")
)

type TicketRequest struct {
	Name string `json:"name"`
}

// Handler 签发座位票据：票据里的 sub 就是玩家名，join 时必须一致
type Handler struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// 工厂方法：创建 handler
func NewHandler(secret []byte, ttl time.Duration) *Handler {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Handler{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a ticket for name.
func (h *Handler) Issue(name string) (string, error) {
	if len(h.secret) == 0 {
		return "", ErrNoSecret
	}
	now := h.now()
	claims := jwt.RegisteredClaims{
		Subject:   name,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
}

// POST /auth/ticket
func (h *Handler) Ticket(c *gin.Context) {
	var req TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	ticket, err := h.Issue(name)
	if err != nil {
		utils.Log.Error("ticket generation failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ticket generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket, "expiresIn": int(h.ttl.Seconds())})
}

// ParseTicket verifies a ticket and returns the player name it was issued to.
func ParseTicket(secret []byte, raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}
	if !token.Valid || strings.TrimSpace(claims.Subject) == "" {
		return "", ErrInvalidTicket
	}
	return claims.Subject, nil
}
