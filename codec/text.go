package codec

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/stewi1014/arcs/archive"
	"github.com/stewi1014/arcs/encio"
	"github.com/stewi1014/arcs/value"
)

// Text serializes a value.Text as its source string.
func Text(ar archive.Archive, name string, t *value.Text) error {
	s := t.ToString()
	if err := ar.String(name, &s); err != nil {
		return err
	}
	if ar.Loading() {
		*t = value.TextFromString(s)
	}
	return nil
}

// Name serializes a value.Name as its string. Loaded names are interned.
func Name(ar archive.Archive, name string, n *value.Name) error {
	s := n.String()
	if err := ar.String(name, &s); err != nil {
		return err
	}
	if ar.Loading() {
		*n = value.NewName(s)
	}
	return nil
}

// DateTime serializes a time.Time as an ISO 8601 string with millisecond precision, e.g. "2024-02-29T12:30:00.125Z".
// Anything finer than a millisecond is lost.
var DateTime = Minimal(formatDateTime, parseDateTime)

func formatDateTime(t time.Time) string {
	return strfmt.DateTime(t).String()
}

func parseDateTime(s string) (time.Time, error) {
	dt, err := strfmt.ParseDateTime(s)
	if err != nil {
		return time.Time{}, encio.NewIOError(encio.ErrMalformed, nil, err.Error(), 1)
	}
	return time.Time(dt), nil
}

// Timespan serializes a time.Duration as a duration string, e.g. "1h2m3.5s".
var Timespan = Minimal(formatTimespan, parseTimespan)

func formatTimespan(d time.Duration) string {
	return strfmt.Duration(d).String()
}

func parseTimespan(s string) (time.Duration, error) {
	d, err := strfmt.ParseDuration(s)
	if err != nil {
		return 0, encio.NewIOError(encio.ErrMalformed, nil, err.Error(), 1)
	}
	return d, nil
}

// BigInt serializes a *big.Int as a hexadecimal string, e.g. "0x1f" or "-0x1f".
// Loading accepts either case, an optional 0x or 0X prefix and leading zeros, and always allocates a new big.Int.
// A nil *big.Int is saved as zero.
var BigInt = Minimal(FormatBigInt, ParseBigInt)

// FormatBigInt returns x as a "0x" prefixed, lower case hexadecimal string.
func FormatBigInt(x *big.Int) string {
	if x == nil {
		return "0x0"
	}
	if x.Sign() < 0 {
		return "-0x" + new(big.Int).Neg(x).Text(16)
	}
	return "0x" + x.Text(16)
}

// ParseBigInt parses a hexadecimal integer.
func ParseBigInt(s string) (*big.Int, error) {
	digits := strings.TrimSpace(s)

	negative := false
	switch {
	case strings.HasPrefix(digits, "-"):
		negative, digits = true, digits[1:]
	case strings.HasPrefix(digits, "+"):
		digits = digits[1:]
	}

	if len(digits) >= 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		digits = digits[2:]
	}

	x, ok := new(big.Int), false
	if digits != "" && digits[0] != '-' && digits[0] != '+' {
		x, ok = x.SetString(digits, 16)
	}
	if !ok {
		return nil, encio.NewIOError(encio.ErrMalformed, nil, fmt.Sprintf("%q is not a hexadecimal integer", s), 0)
	}

	if negative {
		x.Neg(x)
	}
	return x, nil
}
