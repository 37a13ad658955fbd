// Package bind is the runtime core of an object-graph marshalling engine.
//
// A Context answers two questions for a marshaller:
//
//   - what a type looks like: GetOrCreateClassModel builds, once per type, an immutable
//     model of its bindable properties and of its parent levels (embedded first fields);
//   - which user component applies to a runtime type: ResolveSerializer, ResolveDeserializer
//     and ResolveAdapter search the components registered with the context.
//
// Components declare the type they bind to through their method signatures
// (Serialize, Deserialize, AdaptTo), or explicitly by implementing component.Declarer.
// Per-property customization is read from `bind` struct tags.
//
// Encoding and decoding of values is left to the caller.
package bind
