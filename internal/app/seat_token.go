package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

var (
	ErrSeatTokenConfig  = errors.New("seat token config is incomplete")
	ErrInvalidSeatToken = errors.New("invalid seat token")
)

// SeatClaims identify a seat a player may reconnect to.
type SeatClaims struct {
	UserID   string
	MatchID  string
	Nickname string
}

// SeatTokenService issues and checks the tokens handed to players so they
// can rejoin their match after a disconnect.
type SeatTokenService struct {
	secret string
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewSeatTokenService(secret, issuer string, ttl time.Duration) *SeatTokenService {
	return &SeatTokenService{secret: secret, issuer: issuer, ttl: ttl, now: time.Now}
}

func (s *SeatTokenService) GenerateToken(c SeatClaims) (string, error) {
	if s == nil {
		return "", fmt.Errorf("seat token service is nil")
	}
	if s.secret == "" || s.issuer == "" || s.ttl <= 0 {
		return "", ErrSeatTokenConfig
	}
	if c.UserID == "" || c.MatchID == "" {
		return "", fmt.Errorf("user and match are required")
	}

	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": c.UserID,
		"exp": s.now().Add(s.ttl).Unix(),
		"mid": c.MatchID,
		"nck": c.Nickname,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// Verify checks the signature, issuer and expiry of tokenString.
func (s *SeatTokenService) Verify(tokenString string) (SeatClaims, error) {
	if s == nil || s.secret == "" {
		return SeatClaims{}, ErrSeatTokenConfig
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return SeatClaims{}, fmt.Errorf("%w: %v", ErrInvalidSeatToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return SeatClaims{}, ErrInvalidSeatToken
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return SeatClaims{}, fmt.Errorf("%w: wrong issuer", ErrInvalidSeatToken)
	}
	out := SeatClaims{}
	out.UserID, _ = claims["sub"].(string)
	out.MatchID, _ = claims["mid"].(string)
	out.Nickname, _ = claims["nck"].(string)
	if out.UserID == "" || out.MatchID == "" {
		return SeatClaims{}, fmt.Errorf("%w: missing claims", ErrInvalidSeatToken)
	}
	return out, nil
}
