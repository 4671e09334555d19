package feature

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planviz/pkg/plan"
)

// EmailVariable names the plan variable consulted by the subscription fallback.
const EmailVariable = "email_addresses"

// Flag identifies one member of a [Set].
type Flag int

// Flags in canonical order.
const (
	S3 Flag = iota
	SNS
	Subscription
	Versioning
	Encryption
	Lifecycle
	PAB
	TopicPolicy

	flagCount
)

var flagNames = [flagCount]string{
	S3:           "s3",
	SNS:          "sns",
	Subscription: "subscription",
	Versioning:   "versioning",
	Encryption:   "encryption",
	Lifecycle:    "lifecycle",
	PAB:          "pab",
	TopicPolicy:  "topic_policy",
}

// String returns the flag's canonical name, e.g. "topic_policy".
func (f Flag) String() string {
	if f < 0 || f >= flagCount {
		return "unknown"
	}
	return flagNames[f]
}

// resourceFlags is the fixed detection table. Each recognized type sets exactly one flag.
var resourceFlags = map[string]Flag{
	"aws_s3_bucket":              S3,
	"aws_sns_topic":              SNS,
	"aws_sns_topic_subscription": Subscription,
	"aws_s3_bucket_versioning":   Versioning,
	"aws_s3_bucket_server_side_encryption_configuration": Encryption,
	"aws_s3_bucket_lifecycle_configuration":              Lifecycle,
	"aws_s3_bucket_public_access_block":                  PAB,
	"aws_sns_topic_policy":                               TopicPolicy,
}

// Flags returns all flags in canonical order.
func Flags() []Flag {
	out := make([]Flag, flagCount)
	for i := range out {
		out[i] = Flag(i)
	}
	return out
}

// Names returns the canonical flag names in order.
// The result is a copy; changing it does not affect [Flag.String].
func Names() []string {
	return slices.Clone(flagNames[:])
}

// ResourceType returns the Terraform resource type that enables f.
func ResourceType(f Flag) string {
	for t, flag := range resourceFlags {
		if flag == f {
			return t
		}
	}
	return ""
}

// Lookup returns the flag enabled by a resource type.
func Lookup(resourceType string) (Flag, bool) {
	f, ok := resourceFlags[resourceType]
	return f, ok
}

// Set is the detected feature set. The zero value has every flag off.
// A Set is a plain value: copies are independent.
type Set struct {
	S3           bool `json:"s3"`
	SNS          bool `json:"sns"`
	Subscription bool `json:"subscription"`
	Versioning   bool `json:"versioning"`
	Encryption   bool `json:"encryption"`
	Lifecycle    bool `json:"lifecycle"`
	PAB          bool `json:"pab"`
	TopicPolicy  bool `json:"topic_policy"`
}

// Has reports whether f is enabled.
func (s Set) Has(f Flag) bool {
	if p := s.field(f); p != nil {
		return *p
	}
	return false
}

// With returns a copy of s with f enabled.
func (s Set) With(f Flag) Set {
	if p := s.field(f); p != nil {
		*p = true
	}
	return s
}

// field points into the receiver copy; callers must not retain it.
func (s *Set) field(f Flag) *bool {
	switch f {
	case S3:
		return &s.S3
	case SNS:
		return &s.SNS
	case Subscription:
		return &s.Subscription
	case Versioning:
		return &s.Versioning
	case Encryption:
		return &s.Encryption
	case Lifecycle:
		return &s.Lifecycle
	case PAB:
		return &s.PAB
	case TopicPolicy:
		return &s.TopicPolicy
	}
	return nil
}

// Enabled returns the names of enabled flags in canonical order.
func (s Set) Enabled() []string {
	out := []string{}
	for _, f := range Flags() {
		if s.Has(f) {
			out = append(out, f.String())
		}
	}
	return out
}

// Map returns the set as name → value, covering all eight flags.
func (s Set) Map() map[string]bool {
	out := make(map[string]bool, flagCount)
	for _, f := range Flags() {
		out[f.String()] = s.Has(f)
	}
	return out
}

// Option configures [Detect].
type Option func(*detector)

// WithLogger reports skipped resources and the subscription fallback at debug level.
func WithLogger(l *log.Logger) Option {
	return func(d *detector) { d.logger = l }
}

type detector struct {
	logger *log.Logger
}

// Detect derives the feature set from planned resources and plan variables.
//
// Resource types are matched against the fixed table; unrecognized or
// missing types are skipped. If no subscription resource was found, a
// non-empty email_addresses list enables Subscription. The result depends
// only on the inputs, so repeated calls return equal sets.
func Detect(resources []plan.Resource, vars map[string]plan.Variable, opts ...Option) Set {
	d := &detector{}
	for _, opt := range opts {
		opt(d)
	}

	var fs Set
	for _, r := range resources {
		f, ok := resourceFlags[r.Type]
		if !ok {
			d.debug("skipping resource", "address", r.Address, "type", r.Type)
			continue
		}
		fs = fs.With(f)
	}

	if !fs.Subscription {
		if emails, ok := vars[EmailVariable].Strings(); ok && len(emails) > 0 {
			fs.Subscription = true
			d.debug("subscription detected via variable", "variable", EmailVariable, "emails", len(emails))
		}
	}
	return fs
}

func (d *detector) debug(msg string, keyvals ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, keyvals...)
	}
}
