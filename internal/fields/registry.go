package fields

import "comicbox/internal/metadata"

// Reading directions.
var ReadingDirections = []string{"ltr", "rtl", "ttb", "btt"}

var rules = map[string]Rule{}

func register(rule Rule, paths ...string) {
	for _, path := range paths {
		rules[path] = rule
	}
}

func init() {
	register(StringRule{},
		metadata.KeyTitle, metadata.KeySummary, metadata.KeyNotes, metadata.KeyReview,
		metadata.KeyScanInfo, metadata.KeyTagger, metadata.KeyRights,
		metadata.KeyCollectionTitle, metadata.KeyPublisher, metadata.KeyImprint,
		metadata.KeyOriginalFormat, metadata.KeyAgeRating, metadata.KeyCoverImage,
		metadata.KeyProtagonist, metadata.KeyExt, metadata.KeyIdentifierPrimarySource,
		metadata.PathSeriesName, metadata.PathSeriesSortName, metadata.PathIssueSuffix,
	)
	register(IssueRule{}, metadata.PathIssueName)
	register(DecimalRule{}, metadata.PathIssueNumber)
	register(DecimalRange("rating", 0, 5), metadata.KeyCommunityRating, metadata.KeyCriticalRating)
	register(AtLeast("year", 0), metadata.KeyYear, metadata.PathSeriesStartYear)
	register(InRange("month", 1, 12), metadata.KeyMonth)
	register(InRange("day", 1, 31), metadata.KeyDay)
	register(AtLeast("count", 0), metadata.KeyPageCount, metadata.PathSeriesVolumeCount, metadata.PathVolumeIssueCount)
	register(VolumeRule{}, metadata.PathVolumeNumber, metadata.PathVolumeNumberTo)
	register(DateRule{}, metadata.KeyCoverDate, metadata.KeyStoreDate)
	register(DateTimeRule{}, metadata.KeyUpdatedAt)
	register(LanguageRule{}, metadata.KeyLanguage)
	register(CountryRule{}, metadata.KeyCountry)
	register(BoolRule{}, metadata.KeyManga, metadata.KeyMonochrome)
	register(ChoiceRule{Label: "reading_direction", Choices: ReadingDirections}, metadata.KeyReadingDirection)
	register(StringSetRule{}, metadata.SetKeys...)
}

// RuleFor returns the coercion rule for a canonical path, or nil.
func RuleFor(path string) Rule {
	return rules[path]
}
