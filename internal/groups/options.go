package groups

// Default option values.
const (
	DefaultPrefix = "group-"
	DefaultTag    = "__groups"
)

// Verbose receives diagnostic lines. It never affects returned values.
type Verbose interface {
	Enabled() bool
	Writeln(line string)
}

// Option configures a Collector.
type Option func(*options)

type options struct {
	prefix  string
	tag     string
	verbose Verbose
	warn    func(msg string)
	fatal   func(err error)
}

func defaultOptions() options {
	return options{
		prefix: DefaultPrefix,
		tag:    DefaultTag,
	}
}

// WithPrefix sets the string prepended to every group name.
// An empty prefix disables prefixing.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithTag sets the property name that marks group membership.
// An empty tag keeps the default.
func WithTag(tag string) Option {
	return func(o *options) {
		if tag != "" {
			o.tag = tag
		}
	}
}

// WithVerbose sets the sink for progress and summary lines.
func WithVerbose(v Verbose) Option {
	return func(o *options) {
		o.verbose = v
	}
}

// WithWarn sets the function placeholder groups call when run.
func WithWarn(warn func(msg string)) Option {
	return func(o *options) {
		o.warn = warn
	}
}

// WithFatal sets a hook that receives every validation error before it is
// returned. Hosts that abort on bad configuration can panic or exit here.
func WithFatal(fatal func(err error)) Option {
	return func(o *options) {
		o.fatal = fatal
	}
}

type noopVerbose struct{}

func (noopVerbose) Enabled() bool  { return false }
func (noopVerbose) Writeln(string) {}
