package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens

	"github.com/iliyamo/dealership-inventory/internal/model"
)

// SessionToken represents a signed session JWT along with its expiry.
// The token is a self-contained bearer credential: the server keeps no
// session record for it, so it stays valid until its expiry elapses.
// Logout is a client-side discard; there is no revocation list.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// SessionClaims are the claims embedded in a session token: the account's
// public fields plus the registered subject/expiry/issued-at claims.  The
// password hash is stripped before the claims are built and must never
// appear here.
type SessionClaims struct {
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Errors returned by VerifySessionToken.  Expiry is reported separately
// from other validation failures so callers can tell a stale session from
// a forged one.
var (
	ErrTokenInvalid = errors.New("invalid session token")
	ErrTokenExpired = errors.New("session token expired")
)

// NewSessionToken builds and signs an HS256 JWT for an account.  It takes
// the signing secret, the account, and a TTL in minutes, and returns the
// signed token with its expiration time.  Only the identity fields of the
// account are embedded.
func NewSessionToken(secret string, acct model.Account, ttlMin int) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := SessionClaims{
		FirstName: acct.FirstName,
		LastName:  acct.LastName,
		Email:     acct.Email,
		Role:      acct.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   jwtSubject(acct.ID),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// VerifySessionToken checks the signature and expiry of a session token
// and returns the embedded identity.  It is a pure function of the token
// and the secret: verifying twice yields the same identity.
func VerifySessionToken(secret, raw string) (model.Identity, error) {
	var claims SessionClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Identity{}, ErrTokenExpired
		}
		return model.Identity{}, ErrTokenInvalid
	}
	if !tok.Valid {
		return model.Identity{}, ErrTokenInvalid
	}
	id, err := parseSubject(claims.Subject)
	if err != nil {
		return model.Identity{}, ErrTokenInvalid
	}
	return model.Identity{
		AccountID: id,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Email:     claims.Email,
		Role:      claims.Role,
	}, nil
}

// jwtSubject renders an account ID as the token subject claim; parseSubject
// converts it back.
func jwtSubject(id uint64) string { return strconv.FormatUint(id, 10) }

func parseSubject(sub string) (uint64, error) {
	return strconv.ParseUint(sub, 10, 64)
}
