// Package admission implements the cache's pure admit/evict decision
// function. It holds no state of its own: every call is given read-only
// views of the current resident set and access counter.
package admission

import "sort"

// ResidentView is the read-only slice of resident.Set the policy needs.
// The cache engine's resident.Set satisfies this directly.
type ResidentView interface {
	UsedBytes() int
	SizeOf(path string) (int, bool)
	Paths() []string
}

// CounterView is the read-only slice of counter.Counter the policy needs.
type CounterView interface {
	Peek(path string) uint64
}

// Candidate describes the path the engine is deciding whether to retain.
type Candidate struct {
	Path  string
	Size  int
	Count uint64
}

// RejectReason explains why Reject was returned. It is diagnostic only —
// the caller of the engine still receives the bytes it read either way.
type RejectReason int

const (
	// InsufficientDemand means an eviction set exists by size alone, but
	// the candidate's count does not exceed every victim's count.
	InsufficientDemand RejectReason = iota
	// TooLarge means the candidate alone exceeds the size limit; no
	// eviction set could ever make room for it.
	TooLarge
)

func (r RejectReason) String() string {
	switch r {
	case TooLarge:
		return "too_large"
	case InsufficientDemand:
		return "insufficient_demand"
	default:
		return "unknown"
	}
}

// Decision is the outcome of Decide: exactly one of Admit, Evict, or
// Reject is meaningful, discriminated by Kind.
type Decision struct {
	Kind   Kind
	Victim []string // ordered eviction set, only meaningful when Kind == Evict
	Reason RejectReason
}

// Kind discriminates the three decision outcomes.
type Kind int

const (
	// Admit means the candidate fits without evicting anything.
	Admit Kind = iota
	// Evict means the candidate fits only after evicting Victim, in order.
	Evict
	// Reject means the candidate should not be retained.
	Reject
)

// Decide applies the admission algorithm from the spec:
//
//  1. If the candidate fits without eviction, Admit.
//  2. If the candidate alone exceeds the limit, Reject(TooLarge).
//  3. Otherwise sort resident entries by count ascending, then size
//     descending, then path ascending, and greedily select victims until
//     their cumulative size covers the shortfall.
//  4. Admit the eviction only if the candidate's count strictly exceeds
//     every selected victim's count; otherwise Reject(InsufficientDemand).
func Decide(resident ResidentView, counter CounterView, limitBytes int, cand Candidate) Decision {
	needed := resident.UsedBytes() + cand.Size - limitBytes
	if needed <= 0 {
		return Decision{Kind: Admit}
	}
	if cand.Size > limitBytes {
		return Decision{Kind: Reject, Reason: TooLarge}
	}

	victims := selectVictims(resident, counter, needed)

	for _, v := range victims {
		if counter.Peek(v) >= cand.Count {
			return Decision{Kind: Reject, Reason: InsufficientDemand}
		}
	}
	return Decision{Kind: Evict, Victim: victims}
}

type candidateVictim struct {
	path  string
	size  int
	count uint64
}

// selectVictims sorts resident entries by count ascending, then size
// descending, then path ascending, and greedily accumulates them until their total size is at least
// needed. The tie-break order matters: among equally unpopular entries,
// larger ones are preferred so fewer evictions are needed to cover the
// shortfall.
func selectVictims(resident ResidentView, counter CounterView, needed int) []string {
	paths := resident.Paths()
	candidates := make([]candidateVictim, 0, len(paths))
	for _, p := range paths {
		size, ok := resident.SizeOf(p)
		if !ok {
			continue
		}
		candidates = append(candidates, candidateVictim{
			path:  p,
			size:  size,
			count: counter.Peek(p),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.count != b.count {
			return a.count < b.count
		}
		if a.size != b.size {
			return a.size > b.size
		}
		return a.path < b.path
	})

	var victims []string
	var freed int
	for _, c := range candidates {
		if freed >= needed {
			break
		}
		victims = append(victims, c.path)
		freed += c.size
	}
	return victims
}
