package domain

import (
	"regexp"
	"strings"
)

// Validated immutable scalars shared by Customer and Partner. Construction is
// the only entry point; a value that exists is a value that passed validation.

var (
	cpfMask   = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	cnpjMask  = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)
	emailMask = regexp.MustCompile(`^([a-z0-9_.-]+)@([\da-z.-]+)\.([a-z.]{2,6})$`)
)

const (
	nameMinLen = 3
	nameMaxLen = 255
)

// Name is a person or event display name.
type Name struct{ value string }

func NewName(raw string) (Name, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < nameMinLen || len(trimmed) > nameMaxLen {
		return Name{}, newInvalidValue("Name")
	}
	return Name{value: trimmed}, nil
}

func (n Name) String() string { return n.value }

// CPF is a Brazilian natural-person tax id in the ddd.ddd.ddd-dd mask.
type CPF struct{ value string }

func NewCPF(raw string) (CPF, error) {
	if !cpfMask.MatchString(raw) || !validCPFDigits(digitsOf(raw)) {
		return CPF{}, newInvalidValue("Cpf")
	}
	return CPF{value: raw}, nil
}

func (c CPF) String() string { return c.value }

// CNPJ is a Brazilian company tax id in the dd.ddd.ddd/dddd-dd mask.
type CNPJ struct{ value string }

func NewCNPJ(raw string) (CNPJ, error) {
	if !cnpjMask.MatchString(raw) || !validCNPJDigits(digitsOf(raw)) {
		return CNPJ{}, newInvalidValue("Cnpj")
	}
	return CNPJ{value: raw}, nil
}

func (c CNPJ) String() string { return c.value }

// Email is a lower-case e-mail address.
type Email struct{ value string }

func NewEmail(raw string) (Email, error) {
	if !emailMask.MatchString(raw) {
		return Email{}, newInvalidValue("Email")
	}
	return Email{value: raw}, nil
}

func (e Email) String() string { return e.value }

func digitsOf(raw string) []int {
	digits := make([]int, 0, len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	return digits
}

func allSame(digits []int) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

// checkDigit computes a mod-11 verification digit over digits using the given
// positional weights.
func checkDigit(digits []int, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += digits[i] * w
	}
	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}

func validCPFDigits(digits []int) bool {
	if len(digits) != 11 || allSame(digits) {
		return false
	}
	first := checkDigit(digits, []int{10, 9, 8, 7, 6, 5, 4, 3, 2})
	second := checkDigit(digits, []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2})
	return digits[9] == first && digits[10] == second
}

func validCNPJDigits(digits []int) bool {
	if len(digits) != 14 || allSame(digits) {
		return false
	}
	first := checkDigit(digits, []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2})
	second := checkDigit(digits, []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2})
	return digits[12] == first && digits[13] == second
}
