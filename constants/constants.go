package constants

const Namespace = "bind"

// ErrorFieldNamespace for all exported error field keys.
const ErrorFieldNamespace = Namespace

// TagName is the struct tag key read by the default introspector.
const TagName = "bind"

// Struct tag directives.
const (
	DirectiveName         = "name"
	DirectiveRead         = "read"
	DirectiveWrite        = "write"
	DirectiveNillable     = "nillable"
	DirectiveTransient    = "transient"
	DirectiveSkip         = "-"
	DirectiveReadOnly     = "readonly"
	DirectiveWriteOnly    = "writeonly"
	DirectiveDate         = "date"
	DirectiveNumber       = "number"
	DirectiveAdapter      = "adapter"
	DirectiveSerializer   = "serializer"
	DirectiveDeserializer = "deserializer"
	DirectiveOrder        = "order"
)

// Defaults used when no configuration is supplied.
const (
	DefaultDateFormat = "2006-01-02T15:04:05.999999999Z07:00"
	DefaultLocale     = "en"
)
