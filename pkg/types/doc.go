// Package types defines the shelf encoding model: channel vocabulary, shelf
// identifiers, field definitions, the channel-keyed encoding, the shelf
// action protocol, and the standard errors shared by the rest of the module.
//
// A Shelf is the state behind the encoding pane. Concrete channels live in a
// lookup table keyed by Channel; wildcard channels live in an ordered list
// addressed by a stable index. Shelf state changes only through the four
// Action variants.
package types
