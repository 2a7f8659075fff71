package sfv

import "fmt"

// ReadErrorPolicy decides what happens when a matched file cannot be
// checksummed, for example because it vanished after the directory was
// listed or a read failed part way through.
type ReadErrorPolicy int

const (
	// ReadErrorAbort stops the run and returns the error.
	ReadErrorAbort ReadErrorPolicy = iota
	// ReadErrorMissing reports the entry as not found.
	ReadErrorMissing
	// ReadErrorBad reports the entry as found with a wrong checksum.
	// Update has no such status and treats it like ReadErrorMissing.
	ReadErrorBad
)

var policyNames = map[ReadErrorPolicy]string{
	ReadErrorAbort:   "abort",
	ReadErrorMissing: "missing",
	ReadErrorBad:     "bad",
}

func (p ReadErrorPolicy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("ReadErrorPolicy(%d)", int(p))
}

// ParseReadErrorPolicy accepts the names printed by String.
func ParseReadErrorPolicy(s string) (ReadErrorPolicy, error) {
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf(
		"invalid read error policy %q (want abort, missing or bad)", s,
	)
}

type options struct {
	readErrors ReadErrorPolicy
}

// Option adjusts a Verify or Update run.
type Option func(*options)

// WithReadErrors sets the policy for matched files that cannot be
// checksummed. The default is ReadErrorAbort.
func WithReadErrors(p ReadErrorPolicy) Option {
	return func(o *options) {
		o.readErrors = p
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
