package idosoms

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// cpfDigits strips everything but digits.
func cpfDigits(cpf string) string {
	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateCPF checks the Brazilian CPF checksum (both verifier digits).
// Formatted and bare inputs are accepted.
func ValidateCPF(cpf string) bool {
	digits := cpfDigits(cpf)
	if len(digits) != 11 {
		return false
	}

	// all-equal sequences pass the checksum but are not valid documents
	allEqual := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	if checkDigit(digits, 9) != int(digits[9]-'0') {
		return false
	}
	return checkDigit(digits, 10) == int(digits[10]-'0')
}

// checkDigit computes the verifier digit over the first n positions.
func checkDigit(digits string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(digits[i]-'0') * (n + 1 - i)
	}
	rem := (sum * 10) % 11
	if rem == 10 || rem == 11 {
		rem = 0
	}
	return rem
}

// FormatCPF applies the ###.###.###-## display mask.
func FormatCPF(cpf string) string {
	digits := cpfDigits(cpf)
	if len(digits) != 11 {
		return digits
	}
	return fmt.Sprintf("%s.%s.%s-%s", digits[0:3], digits[3:6], digits[6:9], digits[9:11])
}

// MaskCPF hides the middle digits for display (LGPD).
func MaskCPF(cpf string) string {
	digits := cpfDigits(cpf)
	if len(digits) != 11 {
		return ""
	}
	return fmt.Sprintf("%s.***.**-%s", digits[0:3], digits[9:11])
}

// HashCPF returns the hex SHA-256 of the bare digits. Profiles persist the
// hash only, never the document itself.
func HashCPF(cpf string) string {
	digits := cpfDigits(cpf)
	if digits == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(digits))
	return hex.EncodeToString(sum[:])
}
