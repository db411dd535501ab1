package retry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Attempt is the envelope contract every retryable event satisfies:
// when it was first created and how many prior attempts failed.
type Attempt interface {
	Created() time.Time
	Attempts() int
}

// BackoffKind discriminates the backoff strategies.
type BackoffKind int

const (
	BackoffConstant BackoffKind = iota
	BackoffLinear
	BackoffGolden
)

// Backoff computes the delay before the next attempt as a pure
// function of how many attempts already failed.
type Backoff struct {
	Kind  BackoffKind
	Delay time.Duration
}

// Constant always waits the same delay.
func Constant(d time.Duration) Backoff { return Backoff{Kind: BackoffConstant, Delay: d} }

// Linear waits delay * (attempts + 1).
func Linear(d time.Duration) Backoff { return Backoff{Kind: BackoffLinear, Delay: d} }

// Golden waits delay * round(1.6^attempts), a curve between linear and
// exponential.
func Golden(d time.Duration) Backoff { return Backoff{Kind: BackoffGolden, Delay: d} }

// Wait returns the delay for an event with the given number of prior
// attempts.
func (b Backoff) Wait(attempts int) time.Duration {
	switch b.Kind {
	case BackoffLinear:
		return b.Delay * time.Duration(attempts+1)
	case BackoffGolden:
		// 8/5 approximates the golden ratio. Rounding happens after the
		// power, so consecutive delays may repeat for small bases.
		return b.Delay * time.Duration(math.Round(math.Pow(1.6, float64(attempts))))
	default:
		return b.Delay
	}
}

// String encodes the backoff: bare duration for Constant, "+" prefix
// for Linear, "~" prefix for Golden.
func (b Backoff) String() string {
	switch b.Kind {
	case BackoffLinear:
		return "+" + b.Delay.String()
	case BackoffGolden:
		return "~" + b.Delay.String()
	default:
		return b.Delay.String()
	}
}

// TerminationKind discriminates the termination strategies.
type TerminationKind int

const (
	TerminationRetries TerminationKind = iota
	TerminationDuration
)

// Termination decides when retrying stops.
type Termination struct {
	Kind       TerminationKind
	MaxRetries int
	Budget     time.Duration
}

// LimitRetries stops once the event has failed max times.
func LimitRetries(max int) Termination {
	return Termination{Kind: TerminationRetries, MaxRetries: max}
}

// LimitDuration stops once the wall clock passes the event's creation
// time plus budget. The budget runs from first creation, not from the
// last attempt.
func LimitDuration(budget time.Duration) Termination {
	return Termination{Kind: TerminationDuration, Budget: budget}
}

// Exhausted reports whether the event has used up its retry budget.
func (t Termination) Exhausted(e Attempt, now time.Time) bool {
	if t.Kind == TerminationDuration {
		return !now.Before(e.Created().Add(t.Budget))
	}
	return e.Attempts() >= t.MaxRetries
}

// String encodes the termination: bare integer for LimitRetries, bare
// duration for LimitDuration.
func (t Termination) String() string {
	if t.Kind == TerminationDuration {
		return t.Budget.String()
	}
	return strconv.Itoa(t.MaxRetries)
}

// Policy pairs a backoff with a termination rule.
type Policy struct {
	Backoff     Backoff
	Termination Termination
}

// Default retries twice with a golden backoff over a one-minute base.
func Default() Policy {
	return Policy{Backoff: Golden(60 * time.Second), Termination: LimitRetries(2)}
}

// Next returns the delay before the event's next attempt, or ok=false
// when the termination rule says give up.
func (p Policy) Next(e Attempt, now time.Time) (time.Duration, bool) {
	if p.Termination.Exhausted(e, now) {
		return 0, false
	}
	return p.Backoff.Wait(e.Attempts()), true
}

// String encodes the policy as "<backoff>:<termination>". Parse
// accepts the output of String.
func (p Policy) String() string {
	return p.Backoff.String() + ":" + p.Termination.String()
}

// Parse decodes "[backoff][':'[termination]]". An omitted side takes
// its default; a bare value with no colon is tried as a backoff first,
// then as a termination. Malformed input on either side fails the
// whole parse.
func Parse(s string) (Policy, error) {
	p := Default()
	if s == "" {
		return p, nil
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		if left := s[:i]; left != "" {
			b, err := parseBackoff(left)
			if err != nil {
				return Policy{}, err
			}
			p.Backoff = b
		}
		if right := s[i+1:]; right != "" {
			t, err := parseTermination(right)
			if err != nil {
				return Policy{}, err
			}
			p.Termination = t
		}
		return p, nil
	}
	if b, err := parseBackoff(s); err == nil {
		p.Backoff = b
		return p, nil
	}
	t, err := parseTermination(s)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid retry policy %q", s)
	}
	p.Termination = t
	return p, nil
}

func parseBackoff(s string) (Backoff, error) {
	kind := BackoffConstant
	switch {
	case strings.HasPrefix(s, "+"):
		kind = BackoffLinear
		s = s[1:]
	case strings.HasPrefix(s, "~"):
		kind = BackoffGolden
		s = s[1:]
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return Backoff{}, fmt.Errorf("invalid backoff %q: %w", s, err)
	}
	if d < 0 {
		return Backoff{}, fmt.Errorf("negative backoff %q", s)
	}
	return Backoff{Kind: kind, Delay: d}, nil
}

func parseTermination(s string) (Termination, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return Termination{}, fmt.Errorf("negative retry limit %q", s)
		}
		return LimitRetries(n), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return Termination{}, fmt.Errorf("invalid termination %q: %w", s, err)
	}
	if d < 0 {
		return Termination{}, fmt.Errorf("negative retry budget %q", s)
	}
	return LimitDuration(d), nil
}
