package result

import (
	"fmt"
	"strings"
)

// Errors is a chain of non-fatal diagnostics collected while checking a
// Set. A nil *Errors means no diagnostics; Append on nil starts a chain,
// so callers can accumulate without pre-allocating.
type Errors struct {
	Next *Errors
	Err  error
}

func (errs *Errors) Append(err error) *Errors {
	if errs == nil {
		return &Errors{Err: err}
	}
	if errs.Next == nil {
		errs.Next = &Errors{Err: err}
		return errs
	}
	errs.Next.Append(err)
	return errs
}

func (errs *Errors) AppendMsg(f string, v ...interface{}) *Errors {
	err := fmt.Errorf(f, v...)
	return errs.Append(err)
}

// List flattens the chain for programmatic inspection.
func (errs *Errors) List() []error {
	if errs == nil {
		return nil
	}
	var out []error
	for e := errs; e != nil; e = e.Next {
		if e.Err != nil {
			out = append(out, e.Err)
		}
	}
	return out
}

func (errs *Errors) Len() int {
	n := 0
	for e := errs; e != nil; e = e.Next {
		if e.Err != nil {
			n++
		}
	}
	return n
}

func (errs *Errors) Error() string {
	if errs == nil {
		return ""
	}
	b := &strings.Builder{}
	errs.writeTo(b)
	return b.String()
}

func (errs *Errors) writeTo(b *strings.Builder) {
	if errs == nil {
		return
	}
	if errs.Err != nil {
		b.WriteString(errs.Err.Error())
		b.WriteRune('\n')
	}
	if errs.Next != nil {
		errs.Next.writeTo(b)
	}
}
