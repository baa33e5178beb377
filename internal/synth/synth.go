package synth

import (
	"fmt"
	"log/slog"

	"comicbox/internal/logging"
	"comicbox/internal/metadata"
)

// Synthesize merges sources, lowest precedence first, into a new document.
// The inputs are not modified.
func Synthesize(logger *slog.Logger, sources []metadata.Metadata) metadata.Metadata {
	logger = logging.NewComponentLogger(logger, "synth")
	out := metadata.New()
	var credits [][]metadata.Credit
	sets := make(map[string]metadata.StringSet)

	for i, src := range sources {
		if len(src) == 0 {
			continue
		}
		src = src.Clone()
		for key, value := range src {
			switch {
			case key == metadata.KeyCredits:
				list, ok := value.([]metadata.Credit)
				if !ok {
					dropped(logger, i, key, value)
					continue
				}
				credits = append(credits, list)
			case metadata.IsSetKey(key):
				set, ok := value.(metadata.StringSet)
				if !ok {
					dropped(logger, i, key, value)
					continue
				}
				if sets[key] == nil {
					sets[key] = metadata.NewStringSet()
				}
				sets[key].Union(set)
			default:
				out[key] = value
			}
		}
	}

	if merged := metadata.MergeCredits(credits...); len(merged) > 0 {
		out[metadata.KeyCredits] = merged
	}
	for key, set := range sets {
		if len(set) > 0 {
			out[key] = set
		}
	}
	out.Prune()
	logger.Debug("synthesized metadata",
		logging.Int("sources", len(sources)),
		logging.Int("keys", len(out)),
	)
	return out
}

func dropped(logger *slog.Logger, source int, key string, value any) {
	logging.WarnWithContext(logger, "source value has the wrong type", "synth_value",
		logging.Int("source", source),
		logging.String(logging.FieldKey, key),
		logging.String("type", fmt.Sprintf("%T", value)),
		logging.String(logging.FieldImpact, "value excluded from synthesis"),
	)
}
