package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateReceiptNumber generates a numeric receipt number with the specified
// prefix and total length
func GenerateReceiptNumber(prefix string, length int) (string, error) {
	if length < len(prefix) || length > 24 {
		return "", fmt.Errorf("invalid receipt number length: %d", length)
	}

	// Generate random digits
	digits := make([]byte, length-len(prefix))
	_, err := rand.Read(digits)
	if err != nil {
		return "", fmt.Errorf("failed to generate random digits: %w", err)
	}

	var builder strings.Builder
	builder.WriteString(prefix)
	for _, b := range digits {
		digit := b%10 + '0' // Convert to ASCII digit
		builder.WriteByte(digit)
	}

	receipt := builder.String()
	if len(receipt) != length {
		return "", fmt.Errorf("generated receipt number has incorrect length: got %d, want %d", len(receipt), length)
	}

	return receipt, nil
}

// SignPayment generates an HMAC over the identifying fields of a payment so a
// stored receipt can be verified later
func SignPayment(creditID string, installmentNumber int, amount, receiptNumber, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	data := fmt.Sprintf("%s|%d|%s|%s", creditID, installmentNumber, amount, receiptNumber)
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyPaymentSignature checks a stored payment signature
func VerifyPaymentSignature(signature, creditID string, installmentNumber int, amount, receiptNumber, secret string) bool {
	expected := SignPayment(creditID, installmentNumber, amount, receiptNumber, secret)
	return hmac.Equal([]byte(signature), []byte(expected))
}
