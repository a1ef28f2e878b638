package pkg

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

var ErrInvalidID = errors.New("id inválido")

// GenerateULID é usado como identificador de requisição.
func GenerateULID() string {
	entropy := ulid.DefaultEntropy()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

func IsValidULID(s string) bool {
	_, err := ulid.Parse(s)
	return err == nil
}

// ParseID converte o id numérico de uma transação vindo da URL.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

func ParseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
