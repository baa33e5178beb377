package metadata

// Canonical keys.
const (
	KeyAgeRating               = "age_rating"
	KeyArcs                    = "arcs"
	KeyCharacters              = "characters"
	KeyCollectionTitle         = "collection_title"
	KeyCommunityRating         = "community_rating"
	KeyCountry                 = "country"
	KeyCoverDate               = "cover_date"
	KeyCoverImage              = "cover_image"
	KeyCredits                 = "credits"
	KeyCriticalRating          = "critical_rating"
	KeyDay                     = "day"
	KeyExt                     = "ext"
	KeyGenres                  = "genres"
	KeyIdentifierPrimarySource = "identifier_primary_source"
	KeyIdentifiers             = "identifiers"
	KeyImprint                 = "imprint"
	KeyIssue                   = "issue"
	KeyLanguage                = "language"
	KeyLocations               = "locations"
	KeyManga                   = "manga"
	KeyMonochrome              = "monochrome"
	KeyMonth                   = "month"
	KeyNotes                   = "notes"
	KeyOriginalFormat          = "original_format"
	KeyPageCount               = "page_count"
	KeyPages                   = "pages"
	KeyPrices                  = "prices"
	KeyProtagonist             = "protagonist"
	KeyPublisher               = "publisher"
	KeyReadingDirection        = "reading_direction"
	KeyRemainders              = "remainders"
	KeyReprints                = "reprints"
	KeyReview                  = "review"
	KeyRights                  = "rights"
	KeyScanInfo                = "scan_info"
	KeySeries                  = "series"
	KeySeriesGroups            = "series_groups"
	KeyStoreDate               = "store_date"
	KeyStories                 = "stories"
	KeySummary                 = "summary"
	KeyTagger                  = "tagger"
	KeyTags                    = "tags"
	KeyTeams                   = "teams"
	KeyTitle                   = "title"
	KeyUniverses               = "universes"
	KeyUpdatedAt               = "updated_at"
	KeyVolume                  = "volume"
	KeyYear                    = "year"
)

// Nested record paths.
const (
	PathSeriesName        = "series.name"
	PathSeriesSortName    = "series.sort_name"
	PathSeriesStartYear   = "series.start_year"
	PathSeriesVolumeCount = "series.volume_count"
	PathVolumeNumber      = "volume.number"
	PathVolumeNumberTo    = "volume.number_to"
	PathVolumeIssueCount  = "volume.issue_count"
	PathIssueName         = "issue.name"
	PathIssueNumber       = "issue.number"
	PathIssueSuffix       = "issue.suffix"
)

// SetKeys lists the keys whose values are unioned across sources during
// synthesis rather than overwritten.
var SetKeys = []string{
	KeyCharacters,
	KeyGenres,
	KeyLocations,
	KeySeriesGroups,
	KeyStories,
	KeyTags,
	KeyTeams,
	KeyUniverses,
}

// IsSetKey reports whether key holds a StringSet.
func IsSetKey(key string) bool {
	for _, k := range SetKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Keys lists every top level canonical key in a stable order.
var Keys = []string{
	KeySeries, KeyVolume, KeyIssue, KeyTitle, KeyCollectionTitle, KeyStories,
	KeyPublisher, KeyImprint, KeyYear, KeyMonth, KeyDay, KeyCoverDate, KeyStoreDate,
	KeySummary, KeyNotes, KeyReview, KeyCredits, KeyCharacters, KeyTeams,
	KeyLocations, KeyUniverses, KeyGenres, KeyTags, KeySeriesGroups, KeyArcs,
	KeyAgeRating, KeyOriginalFormat, KeyLanguage, KeyCountry, KeyManga,
	KeyMonochrome, KeyReadingDirection, KeyCommunityRating, KeyCriticalRating,
	KeyPrices, KeyReprints, KeyIdentifiers, KeyIdentifierPrimarySource,
	KeyProtagonist, KeyRights, KeyScanInfo, KeyTagger, KeyUpdatedAt,
	KeyPageCount, KeyCoverImage, KeyPages, KeyExt, KeyRemainders,
}
