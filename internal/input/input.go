// Package input reads operator answers and asks again until they are valid.
//
// A Field converts a raw line into a value, checks it and, on failure, prints
// one of its configured error messages and prompts again. Which message is
// printed is picked at random; callers must not rely on a particular one.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
)

const DefaultMessage = "Invalid input. Please try again."

// Source supplies raw lines. It returns io.EOF once there is nothing left.
type Source interface {
	ReadLine() (string, error)
}

type lineSource struct {
	sc *bufio.Scanner
}

func NewSource(r io.Reader) Source {
	return &lineSource{sc: bufio.NewScanner(r)}
}

func (s *lineSource) ReadLine() (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}

	if err := s.sc.Err(); err != nil {
		return "", fmt.Errorf("read line: %w", err)
	}

	return "", io.EOF
}

type Field[T any] struct {
	src      Source
	out      io.Writer
	convert  func(raw string) (T, error)
	validate func(v T) bool
	check    func(v T) bool
	messages []string
	pick     func(n int) int
}

// New builds a field from a conversion and a structural check. A nil validate
// accepts every converted value.
func New[T any](src Source, out io.Writer, convert func(string) (T, error), validate func(T) bool) *Field[T] {
	if validate == nil {
		validate = func(T) bool { return true }
	}

	return &Field[T]{
		src:      src,
		out:      out,
		convert:  convert,
		validate: validate,
		check:    func(T) bool { return true },
		messages: []string{DefaultMessage},
		pick:     rand.IntN,
	}
}

// WithMessages replaces the error messages. An empty list keeps the current
// ones.
func (f *Field[T]) WithMessages(messages ...string) *Field[T] {
	if len(messages) > 0 {
		f.messages = messages
	}

	return f
}

// WithCheck adds a predicate on top of the structural check.
func (f *Field[T]) WithCheck(check func(T) bool) *Field[T] {
	if check != nil {
		f.check = check
	}

	return f
}

func (f *Field[T]) message() string {
	return f.messages[f.pick(len(f.messages))]
}

// Read prompts until a valid value arrives. Bad input never escapes; the only
// error is the source running dry or failing.
func (f *Field[T]) Read(prompt string) (T, error) {
	for {
		fmt.Fprint(f.out, prompt)

		raw, err := f.src.ReadLine()
		if err != nil {
			var zero T

			if errors.Is(err, io.EOF) {
				fmt.Fprintln(f.out)
			}

			return zero, err
		}

		v, err := f.convert(strings.TrimSpace(raw))
		if err == nil && f.validate(v) && f.check(v) {
			return v, nil
		}

		fmt.Fprintln(f.out, f.message())
	}
}
