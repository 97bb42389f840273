package domain

import (
	"errors"
	"strings"
	"unicode"
)

var ErrInvalidPhone = errors.New("domain: invalid phone number")

// NormalizePhone приводит введенный номер к каноническому виду:
// из строки убирается все, кроме цифр и знака "+".
// Валидный номер начинается с "+" и содержит не меньше MinPhoneLength
// символов после очистки. Количество цифр сверху не ограничивается.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if unicode.IsDigit(r) || r == '+' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if !strings.HasPrefix(cleaned, "+") || len(cleaned) < MinPhoneLength {
		return "", ErrInvalidPhone
	}
	return cleaned, nil
}
