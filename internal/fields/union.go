package fields

import "fmt"

// Union holds a field that arrives either as a structured object or as a
// bare scalar, such as a series given as {"name": "Saga"} or just "Saga".
type Union[S any, T any] struct {
	Struct   S
	Scalar   T
	IsStruct bool
}

// DecodeUnion tries the structured form first and falls back to the scalar
// form. Only maps are offered to decodeStruct.
func DecodeUnion[S any, T any](raw any, decodeStruct func(map[string]any) (S, error), decodeScalar func(any) (T, error)) (Union[S, T], error) {
	var out Union[S, T]
	if m, ok := asMap(raw); ok {
		s, err := decodeStruct(m)
		if err == nil {
			out.Struct = s
			out.IsStruct = true
			return out, nil
		}
		return out, fmt.Errorf("structured form: %w", err)
	}
	t, err := decodeScalar(raw)
	if err != nil {
		return out, err
	}
	out.Scalar = t
	return out, nil
}

func asMap(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[fmt.Sprint(key)] = value
		}
		return out, true
	}
	return nil, false
}
