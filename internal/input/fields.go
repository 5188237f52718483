package input

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

type ConversionError struct {
	Raw  string
	Kind string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%q is not a valid %s", e.Raw, e.Kind)
}

// Int accepts integers in [minimum, maximum].
func Int(src Source, out io.Writer, minimum, maximum int) *Field[int] {
	return New(src, out,
		func(raw string) (int, error) {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return 0, &ConversionError{Raw: raw, Kind: "integer"}
			}

			return v, nil
		},
		func(v int) bool { return v >= minimum && v <= maximum },
	).WithMessages(fmt.Sprintf("The value must be between %d and %d.", minimum, maximum))
}

// Float accepts decimals in [minimum, maximum].
func Float(src Source, out io.Writer, name string, minimum, maximum float64) *Field[float64] {
	return New(src, out,
		func(raw string) (float64, error) {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return 0, &ConversionError{Raw: raw, Kind: "number"}
			}

			return v, nil
		},
		func(v float64) bool { return v >= minimum && v <= maximum },
	).WithMessages(fmt.Sprintf("The %s must be a number between %g and %g.", name, minimum, maximum))
}

// Enum matches the raw text against the String() of each value, case
// sensitively.
func Enum[E fmt.Stringer](src Source, out io.Writer, values []E) *Field[E] {
	symbols := make([]string, 0, len(values))
	for _, v := range values {
		symbols = append(symbols, v.String())
	}

	return New(src, out,
		func(raw string) (E, error) {
			for _, v := range values {
				if v.String() == raw {
					return v, nil
				}
			}

			var zero E

			return zero, &ConversionError{Raw: raw, Kind: "option"}
		},
		nil,
	).WithMessages(fmt.Sprintf("Invalid option, options: [%s]", strings.Join(symbols, ", ")))
}

// Text accepts any non-empty line.
func Text(src Source, out io.Writer, name string) *Field[string] {
	return New(src, out,
		func(raw string) (string, error) { return raw, nil },
		func(v string) bool { return v != "" },
	).WithMessages(fmt.Sprintf("The %s cannot be left empty.", name))
}

// Date parses with a time layout such as "2006-01-02". Dates come back at
// midnight UTC.
func Date(src Source, out io.Writer, layout string) *Field[time.Time] {
	return New(src, out,
		func(raw string) (time.Time, error) {
			t, err := time.ParseInLocation(layout, raw, time.UTC)
			if err != nil {
				return time.Time{}, &ConversionError{Raw: raw, Kind: "date"}
			}

			return t, nil
		},
		nil,
	).WithMessages("Invalid date, expected format " + layout + ".")
}

// YesNo accepts yes/y/no/n in any case.
func YesNo(src Source, out io.Writer) *Field[bool] {
	return New(src, out,
		func(raw string) (bool, error) {
			switch strings.ToLower(raw) {
			case "yes", "y":
				return true, nil
			case "no", "n":
				return false, nil
			default:
				return false, &ConversionError{Raw: raw, Kind: "yes/no answer"}
			}
		},
		nil,
	).WithMessages("Please answer yes or no.")
}
