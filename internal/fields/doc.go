// Package fields implements the tolerant coercion rules that turn raw values
// from any metadata format into canonical typed values and back.
//
// Every canonical path has a Rule. Rules return (nil, nil) for "no value" and
// an error when the raw input cannot be coerced. A *Warning error carries a
// usable value alongside the complaint (for example a clamped month). The
// Coercer is the only caller adapters use: it absorbs every error, logs a
// warning naming the key, the raw input, and the rule, and hands back either
// the value or nil. Decoding a field therefore never fails the document.
package fields
