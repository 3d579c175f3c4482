package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

// ErrInvalidCookie cookie manipulada, truncada o sellada con otra clave.
var ErrInvalidCookie = errors.New("session: cookie inválida")

const nonceSize = 24

// Codec sella y abre valores de cookie con secretbox (XSalsa20-Poly1305).
type Codec struct {
	key [32]byte
}

// NewCodec deriva la clave desde secret. Con secret vacío usa una clave aleatoria
// (las sesiones no sobreviven a un reinicio).
func NewCodec(secret string) (*Codec, error) {
	c := &Codec{}
	if secret == "" {
		if _, err := io.ReadFull(rand.Reader, c.key[:]); err != nil {
			return nil, fmt.Errorf("session: generar clave: %w", err)
		}
		return c, nil
	}
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("megastore-web session cookie"))
	if _, err := io.ReadFull(kdf, c.key[:]); err != nil {
		return nil, fmt.Errorf("session: derivar clave: %w", err)
	}
	return c, nil
}

// Seal cifra y autentica plain; el resultado es apto para el valor de una cookie.
func (c *Codec) Seal(plain []byte) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("session: nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], plain, &nonce, &c.key)
	return base64.RawURLEncoding.EncodeToString(box), nil
}

// Open revierte Seal. Devuelve ErrInvalidCookie si el valor no fue sellado con esta clave.
func (c *Codec) Open(value string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return nil, ErrInvalidCookie
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &c.key)
	if !ok {
		return nil, ErrInvalidCookie
	}
	return plain, nil
}
