package errors

import (
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/bind/constants"
)

var namespace = errorc.Namespace(constants.Namespace)

// Sentinel errors. Use errors.Is to match.
var (
	ErrConfiguration            = namespace.NewError("configuration error")
	ErrUnresolvableTypeVariable = namespace.NewError("unresolvable type variable")
	ErrNilType                  = namespace.NewError("nil type")
	ErrNilComponent             = namespace.NewError("nil component")
	ErrUnknownComponent         = namespace.NewError("unknown component")
	ErrComponentInstantiation   = namespace.NewError("cannot instantiate component")
	ErrInvalidTag               = namespace.NewError("invalid tag")
	ErrInvalidConfig            = namespace.NewError("invalid configuration")
	ErrUnknownNamingStrategy    = namespace.NewError("unknown property naming strategy")
	ErrUnknownOrderStrategy     = namespace.NewError("unknown property order strategy")
	ErrDuplicatePropertyName    = namespace.NewError("duplicate property name")
	ErrComponentKindMismatch    = namespace.NewError("component kind mismatch")
)

var newKey = errorc.KeyFactory(constants.ErrorFieldNamespace)

// Internal hierarchical segments used to build dotted keys.
const (
	keySegmentComponent = "component"
	keySegmentType      = "type"
	keySegmentProperty  = "property"
	keySegmentTag       = "tag"
	keySegmentConfig    = "config"
)

// Exported structured error field keys
var (
	ErrorFieldComponentType = newKey("type", keySegmentComponent) // bind.component.type
	ErrorFieldComponentKind = newKey("kind", keySegmentComponent) // bind.component.kind
	ErrorFieldComponentID   = newKey("id", keySegmentComponent)   // bind.component.id
	ErrorFieldMethod        = newKey("method", keySegmentComponent)
)

var (
	ErrorFieldTypeName = newKey("name", keySegmentType)     // bind.type.name
	ErrorFieldVariable = newKey("variable", keySegmentType) // bind.type.variable
	ErrorFieldScope    = newKey("scope", keySegmentType)    // bind.type.scope
)

var (
	ErrorFieldPropertyName = newKey("name", keySegmentProperty) // bind.property.name
)

var (
	ErrorFieldDirective = newKey("directive", keySegmentTag) // bind.tag.directive
	ErrorFieldTag       = newKey("raw", keySegmentTag)       // bind.tag.raw
)

var (
	ErrorFieldConfigKey   = newKey("key", keySegmentConfig)   // bind.config.key
	ErrorFieldConfigValue = newKey("value", keySegmentConfig) // bind.config.value
)

var (
	ErrorFieldPhase = newKey("phase")
	ErrorFieldCause = newKey("cause")
)
