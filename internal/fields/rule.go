package fields

import (
	"errors"
	"fmt"
	"log/slog"

	"comicbox/internal/logging"
)

// Rule converts one canonical field between raw wire values and typed values.
type Rule interface {
	Name() string
	// Decode returns the typed value, nil for no value, or an error.
	Decode(raw any) (any, error)
	// Encode returns a wire friendly value (string, int, bool, json.Number,
	// or []string), nil for no value, or an error.
	Encode(value any) (any, error)
}

// Warning is a non-fatal coercion complaint. The value returned with it is
// still used.
type Warning struct {
	Msg string
}

func (w *Warning) Error() string { return w.Msg }

func warnf(format string, args ...any) *Warning {
	return &Warning{Msg: fmt.Sprintf(format, args...)}
}

// Coercer applies rules on behalf of format adapters and converts every
// failure into a logged warning.
type Coercer struct {
	logger *slog.Logger
}

// NewCoercer returns a Coercer that logs through logger.
func NewCoercer(logger *slog.Logger) *Coercer {
	return &Coercer{logger: logging.NewComponentLogger(logger, "fields")}
}

// Decode coerces raw with rule. Failures yield nil.
func (c *Coercer) Decode(key string, raw any, rule Rule) any {
	if raw == nil || rule == nil {
		return nil
	}
	value, err := rule.Decode(raw)
	return c.absorb(key, raw, rule, value, err, "decode")
}

// Encode serializes value with rule. Failures yield nil.
func (c *Coercer) Encode(key string, value any, rule Rule) any {
	if value == nil || rule == nil {
		return nil
	}
	out, err := rule.Encode(value)
	return c.absorb(key, value, rule, out, err, "encode")
}

// DecodePath coerces raw using the registered rule for a canonical path.
func (c *Coercer) DecodePath(path string, raw any) any {
	return c.Decode(path, raw, RuleFor(path))
}

// EncodePath serializes value using the registered rule for a canonical path.
func (c *Coercer) EncodePath(path string, value any) any {
	return c.Encode(path, value, RuleFor(path))
}

// Warn logs a coercion problem found outside a rule, such as a malformed
// structured value inside an adapter.
func (c *Coercer) Warn(key string, raw any, reason string) {
	logging.WarnWithContext(c.logger, "field coercion failed", "field_coercion",
		logging.String(logging.FieldKey, key),
		logging.String("value", fmt.Sprint(raw)),
		logging.String("reason", reason),
		logging.String(logging.FieldErrorHint, "fix or remove the field in the source metadata"),
		logging.String(logging.FieldImpact, "field dropped from synthesized metadata"),
	)
}

func (c *Coercer) absorb(key string, raw any, rule Rule, value any, err error, op string) any {
	if err == nil {
		return value
	}
	var warning *Warning
	if errors.As(err, &warning) {
		logging.WarnWithContext(c.logger, "field value adjusted", "field_coercion",
			logging.String(logging.FieldKey, key),
			logging.String("value", fmt.Sprint(raw)),
			logging.String("rule", rule.Name()),
			logging.Error(err),
			logging.String(logging.FieldImpact, "adjusted value kept"),
		)
		return value
	}
	logging.WarnWithContext(c.logger, "field coercion failed", "field_coercion",
		logging.String(logging.FieldKey, key),
		logging.String("value", fmt.Sprint(raw)),
		logging.String("rule", rule.Name()),
		logging.String("op", op),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "fix or remove the field in the source metadata"),
		logging.String(logging.FieldImpact, "field dropped from synthesized metadata"),
	)
	return nil
}
