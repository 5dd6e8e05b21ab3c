package slug

import (
	"strconv"
	"time"

	"github.com/firnco-tech/holacupid/backend/internal/domain"
)

// DefaultMaxAttempts is the highest numeric suffix EnsureUnique tries
// before falling back to a timestamp suffix.
const DefaultMaxAttempts = 100

// Set is a snapshot of the slugs already taken in one language.
type Set map[string]struct{}

// NewSet returns a Set containing slugs.
func NewSet(slugs ...string) Set {
	s := make(Set, len(slugs))
	for _, v := range slugs {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is taken. A nil Set has nothing taken.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Add marks v as taken.
func (s Set) Add(v string) {
	s[v] = struct{}{}
}

// EnsureUnique returns base if it is not in existing. Otherwise it tries
// base-2, base-3, … base-maxAttempts in that order and returns the first
// free candidate. When every suffix is taken it returns base followed by
// the current Unix time in milliseconds, which is not checked against
// existing.
//
// A maxAttempts <= 0 means DefaultMaxAttempts. EnsureUnique never modifies
// existing; callers resolving several slugs in one batch must Add each
// result before the next call.
func EnsureUnique(base string, existing Set, maxAttempts int) string {
	if !existing.Has(base) {
		return base
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	for i := 2; i <= maxAttempts; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if !existing.Has(candidate) {
			return candidate
		}
	}
	return base + "-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// Index holds one Set per language. A backfill run seeds it with every
// persisted slug and claims each bundle it assigns, so two profiles in the
// same run never share a slug.
type Index map[domain.Language]Set

// NewIndex returns an Index with an empty Set for every language.
func NewIndex() Index {
	ix := make(Index, len(domain.Languages))
	for _, l := range domain.Languages {
		ix[l] = Set{}
	}
	return ix
}

// Seed marks slugs as taken in lang.
func (ix Index) Seed(lang domain.Language, slugs ...string) {
	set := ix.set(lang)
	for _, s := range slugs {
		set.Add(s)
	}
}

// Claim marks every slug in b as taken in its language.
func (ix Index) Claim(b domain.SlugBundle) {
	for l, s := range b {
		ix.set(l).Add(s)
	}
}

// Assign generates a unique bundle for in and claims it.
func (ix Index) Assign(in Input, maxAttempts int) domain.SlugBundle {
	return ix.Fill(in, nil, maxAttempts)
}

// Fill is Assign for a profile that may already own slugs in some
// languages: non-empty entries of current are kept as they are and only the
// missing languages are generated. The whole result is claimed.
func (ix Index) Fill(in Input, current domain.SlugBundle, maxAttempts int) domain.SlugBundle {
	b := Generate(in, ix, maxAttempts)
	for l, s := range current {
		if s != "" {
			b[l] = s
		}
	}
	ix.Claim(b)
	return b
}

func (ix Index) set(l domain.Language) Set {
	set, ok := ix[l]
	if !ok || set == nil {
		set = Set{}
		ix[l] = set
	}
	return set
}

// Generate composes the bundle for in and resolves each language
// independently against existing. existing may be nil and is not modified.
func Generate(in Input, existing Index, maxAttempts int) domain.SlugBundle {
	bundle := Compose(in)
	for l, base := range bundle {
		bundle[l] = EnsureUnique(base, existing[l], maxAttempts)
	}
	return bundle
}
