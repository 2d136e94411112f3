package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

const (
	letterBytes  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberBytes  = "0123456789"
	alphanumeric = letterBytes + numberBytes
)

func GenerateRandomString(length int) string {
	return generateRandom(length, alphanumeric)
}

func GenerateRandomNumericString(length int) string {
	return generateRandom(length, numberBytes)
}

func generateRandom(length int, charset string) string {
	result := make([]byte, length)
	charsetLength := big.NewInt(int64(len(charset)))

	for i := range result {
		num, _ := rand.Int(rand.Reader, charsetLength)
		result[i] = charset[num.Int64()]
	}

	return string(result)
}

// GenerateTransactionID produces an externally visible payment
// correlation id, e.g. "TXN-9f86d081884c7d65".
func GenerateTransactionID() string {
	b := make([]byte, TransactionIDHexLength/2)
	rand.Read(b)
	return TransactionIDPrefix + hex.EncodeToString(b)
}
