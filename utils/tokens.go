package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// SessionCookieName is the cookie the client carries between requests.
const SessionCookieName = "token"

// SessionToken is the signed claims payload of a session. There is
// deliberately no expiry claim: a session lives until the cookie is
// cleared, and there is no server-side revocation list.
type SessionToken struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// TokenService signs and verifies session tokens with a process-wide
// HS256 secret. Construct one in main and pass it to the routes that
// need it.
type TokenService struct {
	signer   *jwt.Signer
	verifier *jwt.Verifier
}

func NewTokenService(secret string) *TokenService {
	verifier := jwt.NewVerifier(jwt.HS256, []byte(secret))
	verifier.Extractors = append(verifier.Extractors, fromSessionCookie)

	return &TokenService{
		signer:   jwt.NewSigner(jwt.HS256, []byte(secret), 0),
		verifier: verifier,
	}
}

// Issue signs a token embedding the user's id and email.
func (s *TokenService) Issue(id uint, email string) (string, error) {
	token, err := s.signer.Sign(SessionToken{ID: id, Email: email})
	if err != nil {
		return "", err
	}
	return string(token), nil
}

// Verify checks the signature of a raw token and returns the embedded
// identity, or an error when the token is missing, malformed or forged.
func (s *TokenService) Verify(raw string) (*SessionToken, error) {
	verified, err := s.verifier.VerifyToken([]byte(raw))
	if err != nil {
		return nil, err
	}

	var claims SessionToken
	if err := verified.Claims(&claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// Auth guards routes that require an actor. Requests without a valid
// session cookie are stopped with 401 before reaching the handler.
func (s *TokenService) Auth() iris.Handler {
	return s.verifier.Verify(func() interface{} {
		return new(SessionToken)
	})
}

// GetSession returns the identity that Auth attached to the request.
func GetSession(ctx iris.Context) *SessionToken {
	return jwt.Get(ctx).(*SessionToken)
}

func fromSessionCookie(ctx iris.Context) string {
	return ctx.GetCookie(SessionCookieName)
}
