// =============================================================================
// Asset Import - Lookup Sources
// =============================================================================
//
// A lookup source supplies the keys that are already persisted, so the row
// validators can reject collisions, plus the reference sets used for the
// optional foreign-key checks.
//
// SOURCES:
//   - file     : a YAML document (FileSource)
//   - postgres : the asset database via database/sql + lib/pq (SQLSource)
//   - redis    : key sets published by the asset web application (RedisSource)
//
// Keys are normalized on load exactly the way the validators normalize row
// values: codes are half-width and trimmed, phone and SIM numbers are reduced
// to digits. A reference list that a source does not provide stays nil, which
// turns the matching foreign-key check off.
//
// =============================================================================

package lookup

import (
	"context"
	"errors"
	"fmt"

	"github.com/ginjaninja78/asset-import/internal/normalize"
	"github.com/ginjaninja78/asset-import/internal/validation"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown lookup driver")

// Snapshot holds every key set needed by one import run.
type Snapshot struct {
	OfficeCodes         validation.KeySet
	OfficeNames         validation.KeySet
	PhoneNumbers        validation.KeySet
	ManagementNumbers   validation.KeySet
	RouterTerminalCodes validation.KeySet
	SIMNumbers          validation.KeySet
	TabletTerminalCodes validation.KeySet
	EmployeeCodes       validation.KeySet
}

// Source loads a Snapshot.
type Source interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// keyKind selects how raw keys are normalized.
type keyKind int

const (
	codeKey keyKind = iota
	digitsKey
)

// set describes one Snapshot member for sources that load set by set.
type set struct {
	name string
	kind keyKind
	dst  func(*Snapshot) *validation.KeySet
}

// sets lists the Snapshot members in a fixed order. The names double as YAML
// keys and Redis key suffixes.
var sets = []set{
	{"office_codes", codeKey, func(s *Snapshot) *validation.KeySet { return &s.OfficeCodes }},
	{"office_names", codeKey, func(s *Snapshot) *validation.KeySet { return &s.OfficeNames }},
	{"phone_numbers", digitsKey, func(s *Snapshot) *validation.KeySet { return &s.PhoneNumbers }},
	{"management_numbers", codeKey, func(s *Snapshot) *validation.KeySet { return &s.ManagementNumbers }},
	{"router_terminal_codes", codeKey, func(s *Snapshot) *validation.KeySet { return &s.RouterTerminalCodes }},
	{"sim_numbers", digitsKey, func(s *Snapshot) *validation.KeySet { return &s.SIMNumbers }},
	{"tablet_terminal_codes", codeKey, func(s *Snapshot) *validation.KeySet { return &s.TabletTerminalCodes }},
	{"employee_codes", codeKey, func(s *Snapshot) *validation.KeySet { return &s.EmployeeCodes }},
}

// normalizeKey applies the validators' normalization to a persisted key.
func normalizeKey(kind keyKind, raw string) string {
	if kind == digitsKey {
		return normalize.NormalizePhoneDigits(normalize.ToHalfWidth(raw))
	}
	return normalize.Clean(raw)
}

// buildSet normalizes raw keys into a KeySet. A nil slice stays a nil set;
// empty keys are dropped.
func buildSet(kind keyKind, raw []string) validation.KeySet {
	if raw == nil {
		return nil
	}
	s := make(validation.KeySet, len(raw))
	for _, r := range raw {
		if k := normalizeKey(kind, r); k != "" {
			s.Add(k)
		}
	}
	return s
}

// Options selects and configures a source for Open.
type Options struct {
	// Driver is "file", "postgres" or "redis".
	Driver string

	// File is the YAML path for the file driver.
	File string

	// URL is the database or Redis connection URL.
	URL string

	// KeyPrefix namespaces the Redis keys. Default: "asset-import".
	KeyPrefix string
}

// Open returns the source described by opts. The returned close function
// releases any connection and is never nil.
func Open(opts Options) (Source, func() error, error) {
	noop := func() error { return nil }

	switch opts.Driver {
	case "", "file":
		return NewFileSource(opts.File), noop, nil
	case "postgres":
		src, err := OpenSQL("postgres", opts.URL)
		if err != nil {
			return nil, noop, err
		}
		return src, src.Close, nil
	case "redis":
		src, err := OpenRedis(opts.URL, opts.KeyPrefix)
		if err != nil {
			return nil, noop, err
		}
		return src, src.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %s", ErrUnknownDriver, opts.Driver)
	}
}
