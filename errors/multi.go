package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If given error implements unpacker interface, it is flattened and instead
// of clubbing together, all its errors are directly included into the result
// set.
func Append(errs ...error) error {
	var res multiError
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(unpacker); ok {
			res = append(res, m.unpack()...)
		} else {
			res = append(res, e)
		}
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	if m, ok := err.(multiError); ok {
		return len(m) == 0
	}
	return false
}

type multiError []error

type unpacker interface {
	unpack() []error
}

func (e multiError) unpack() []error {
	return e
}

func (e multiError) Error() string {
	switch len(e) {
	case 0:
		return "<nil>"
	case 1:
		return e[0].Error()
	}
	points := make([]string, len(e))
	for i, err := range e {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s",
		len(e), strings.Join(points, "\n\t"))
}

// Contains first checks if given error is a multi error and if so, it
// iterates through all clubbed errors to find the match. For a non multi
// error this test works like a direct kind.Is(err) check.
func (kind *Error) Contains(err error) bool {
	if m, ok := err.(multiError); ok {
		for _, e := range m {
			if kind.Contains(e) {
				return true
			}
		}
		return false
	}
	return kind.Is(err)
}
