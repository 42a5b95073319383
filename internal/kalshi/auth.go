package kalshi

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Credentials holds the API key ID and RSA private key for signing requests.
// Kalshi authenticates with an RSA-PSS signature over timestamp+method+path.
type Credentials struct {
	KeyID      string
	PrivateKey *rsa.PrivateKey
}

// LoadCredentialsPEM parses credentials from an in-memory PEM block.
func LoadCredentialsPEM(keyID, pemData string) (*Credentials, error) {
	if keyID == "" {
		return nil, fmt.Errorf("API key ID is required")
	}
	key, err := parsePrivateKey([]byte(pemData))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return &Credentials{KeyID: keyID, PrivateKey: key}, nil
}

// LoadCredentialsFile parses credentials from a PEM file on disk.
func LoadCredentialsFile(keyID, path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	return LoadCredentialsPEM(keyID, string(data))
}

func parsePrivateKey(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	// Try PKCS#8 first (newer format)
	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("key is not an RSA private key")
		}
		return rsaKey, nil
	}

	// Fall back to PKCS#1 (older format)
	rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return rsaKey, nil
}

// SignRequest generates authentication headers for a Kalshi API request.
// The signed message is millisecond timestamp + method + path without query.
func (c *Credentials) SignRequest(method, path string) (map[string]string, error) {
	timestampMs := time.Now().UnixMilli()

	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	message := []byte(strconv.FormatInt(timestampMs, 10) + method + path)

	digest := sha256.Sum256(message)
	signature, err := rsa.SignPSS(rand.Reader, c.PrivateKey, crypto.SHA256, digest[:], &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
		Hash:       crypto.SHA256,
	})
	if err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}

	return map[string]string{
		"KALSHI-ACCESS-KEY":       c.KeyID,
		"KALSHI-ACCESS-TIMESTAMP": strconv.FormatInt(timestampMs, 10),
		"KALSHI-ACCESS-SIGNATURE": base64.StdEncoding.EncodeToString(signature),
	}, nil
}
