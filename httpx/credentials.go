package httpx

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/oauth"
	"golang.org/x/crypto/bcrypt"

	"github.com/pulselabs/pulse-go/config"
)

// refreshTokenLifetime bounds how long a refresh token stays usable. Access
// token TTL comes from config.
const refreshTokenLifetime = 30 * 24 * time.Hour

// NewBearerServer builds the admin token endpoint backed by the emulator
// database.
func NewBearerServer(db *sql.DB, cfg config.Config) *oauth.BearerServer {
	return oauth.NewBearerServer(cfg.TokenSecret, cfg.TokenTTL, &adminVerifier{db: db}, nil)
}

// adminVerifier implements oauth.CredentialsVerifier against the user and
// token tables.
type adminVerifier struct {
	db *sql.DB
}

func (v *adminVerifier) ValidateUser(username, password, scope string, r *http.Request) error {
	var hash []byte
	err := v.db.QueryRow("SELECT password_hash FROM user WHERE username = ?", username).Scan(&hash)
	if err != nil {
		return err
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}

func (v *adminVerifier) StoreTokenID(tokenType oauth.TokenType, credential, tokenID, refreshTokenID string) error {
	_, err := v.db.Exec(`
		INSERT INTO token (username, token_id, refresh_token_id, expiration)
		VALUES (?, ?, ?, ?)`,
		credential, tokenID, refreshTokenID, time.Now().Add(refreshTokenLifetime))
	return err
}

// ValidateTokenID consumes the stored refresh token; the row is deleted even
// when it turns out expired, so a token can only be tried once. A database
// failure surfaces as its own error rather than masquerading as a bad token.
func (v *adminVerifier) ValidateTokenID(tokenType oauth.TokenType, credential, tokenID, refreshTokenID string) error {
	var expiration time.Time
	err := v.db.QueryRow(`
		DELETE FROM token
		WHERE username = ? AND token_id = ? AND refresh_token_id = ?
		RETURNING expiration`,
		credential, tokenID, refreshTokenID).Scan(&expiration)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New("unknown refresh token")
	}
	if err != nil {
		return err
	}
	if time.Now().After(expiration) {
		return errors.New("refresh token expired")
	}
	return nil
}

// AddClaims marks every authenticated user as admin: the emulator has a
// single role.
func (*adminVerifier) AddClaims(tokenType oauth.TokenType, credential, tokenID, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{"roles": "admin"}, nil
}

func (*adminVerifier) AddProperties(tokenType oauth.TokenType, credential, tokenID, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{}, nil
}

// ValidateClient rejects the client-credentials grant; only the password
// grant is served.
func (*adminVerifier) ValidateClient(clientID, clientSecret, scope string, r *http.Request) error {
	return errors.New("client credentials not supported")
}
