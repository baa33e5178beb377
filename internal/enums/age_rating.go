package enums

// ComicInfo age ratings.
const (
	ComicInfoUnknown        = "Unknown"
	ComicInfoAdultsOnly     = "Adults Only 18+"
	ComicInfoEarlyChildhood = "Early Childhood"
	ComicInfoEveryone       = "Everyone"
	ComicInfoEveryone10     = "Everyone 10+"
	ComicInfoG              = "G"
	ComicInfoKidsToAdults   = "Kids to Adults"
	ComicInfoM              = "M"
	ComicInfoMA15           = "MA15+"
	ComicInfoMature17       = "Mature 17+"
	ComicInfoPG             = "PG"
	ComicInfoR18            = "R18+"
	ComicInfoPending        = "Rating Pending"
	ComicInfoTeen           = "Teen"
	ComicInfoX18            = "X18+"
)

// Metron age ratings.
const (
	MetronUnknown  = "Unknown"
	MetronEveryone = "Everyone"
	MetronTeen     = "Teen"
	MetronTeenPlus = "Teen Plus"
	MetronMature   = "Mature"
	MetronExplicit = "Explicit"
	MetronAdult    = "Adult"
)

// Publisher and generic rating vocabularies, used only as aliases.
var (
	marvelRatings = map[string][2]string{
		// rating: {comicinfo, metron}
		"All Ages":              {ComicInfoEveryone, MetronEveryone},
		"PG":                    {ComicInfoEveryone10, MetronTeen},
		"PG+":                   {ComicInfoEveryone10, MetronTeenPlus},
		"Parental Advisory":     {ComicInfoMature17, MetronTeenPlus},
		"PSR":                   {ComicInfoMA15, MetronTeen},
		"PSR+":                  {ComicInfoMature17, MetronTeenPlus},
		"A":                     {ComicInfoEveryone, MetronEveryone},
		"T+":                    {ComicInfoMature17, MetronTeenPlus},
		"T":                     {ComicInfoMA15, MetronTeen},
		"ExplicitContent":       {ComicInfoX18, MetronExplicit},
		"Max: Explicit Content": {ComicInfoX18, MetronExplicit},
		"Max":                   {ComicInfoX18, MetronExplicit},
	}
	dcRatings = map[string][2]string{
		"E":         {ComicInfoEveryone, MetronEveryone},
		"Everyone":  {ComicInfoEveryone, MetronEveryone},
		"T":         {ComicInfoMA15, MetronTeen},
		"Teen":      {ComicInfoMA15, MetronTeen},
		"T+":        {ComicInfoMature17, MetronTeenPlus},
		"Teen Plus": {ComicInfoMature17, MetronTeenPlus},
		"M":         {ComicInfoMature17, MetronMature},
		"Mature":    {ComicInfoMature17, MetronMature},
		"13+":       {ComicInfoMA15, MetronTeen},
		"15+":       {ComicInfoMA15, MetronTeenPlus},
		"17+":       {ComicInfoMature17, MetronMature},
	}
	genericRatings = map[string][2]string{
		"PG13":              {ComicInfoMA15, MetronTeen},
		"R":                 {ComicInfoMature17, MetronMature},
		"X":                 {ComicInfoX18, MetronAdult},
		"XXX":               {ComicInfoX18, MetronAdult},
		"Adult":             {ComicInfoAdultsOnly, MetronAdult},
		"Porn":              {ComicInfoX18, MetronAdult},
		"Pornography":       {ComicInfoX18, MetronAdult},
		"Sex":               {ComicInfoX18, MetronAdult},
		"Sexually Explicit": {ComicInfoX18, MetronAdult},
		"Violent":           {ComicInfoAdultsOnly, MetronExplicit},
		"Violence":          {ComicInfoAdultsOnly, MetronExplicit},
	}
	metronToComicInfo = map[string]string{
		MetronEveryone: ComicInfoEveryone,
		MetronTeen:     ComicInfoTeen,
		MetronTeenPlus: ComicInfoMA15,
		MetronMature:   ComicInfoMature17,
		MetronExplicit: ComicInfoR18,
		MetronAdult:    ComicInfoX18,
	}
	comicInfoToMetron = map[string]string{
		ComicInfoEveryone:       MetronEveryone,
		ComicInfoEarlyChildhood: MetronEveryone,
		ComicInfoEveryone10:     MetronEveryone,
		ComicInfoG:              MetronEveryone,
		ComicInfoKidsToAdults:   MetronEveryone,
		ComicInfoTeen:           MetronTeen,
		ComicInfoPG:             MetronTeen,
		ComicInfoMA15:           MetronTeenPlus,
		ComicInfoM:              MetronMature,
		ComicInfoMature17:       MetronMature,
		ComicInfoR18:            MetronMature,
		ComicInfoX18:            MetronExplicit,
		ComicInfoAdultsOnly:     MetronAdult,
	}
)

// ComicInfoAgeRatings maps any known rating onto the ComicInfo vocabulary.
// Aliases are applied publisher first (Marvel, then DC), then generic, then
// Metron, and a later vocabulary wins on a shared spelling: "Adult" resolves
// through Metron to "X18+". Unknown ratings become "Unknown".
var ComicInfoAgeRatings = buildComicInfoAgeRatings()

// MetronAgeRatings maps any known rating onto the Metron vocabulary, applying
// aliases publisher first, then generic, then ComicInfo. Unknown ratings
// become "Unknown".
var MetronAgeRatings = buildMetronAgeRatings()

func buildComicInfoAgeRatings() *Table {
	t := newTable("comicinfo_age_rating", []string{
		ComicInfoUnknown, ComicInfoAdultsOnly, ComicInfoEarlyChildhood,
		ComicInfoEveryone, ComicInfoEveryone10, ComicInfoG, ComicInfoKidsToAdults,
		ComicInfoM, ComicInfoMA15, ComicInfoMature17, ComicInfoPG, ComicInfoR18,
		ComicInfoPending, ComicInfoTeen, ComicInfoX18,
	}, ComicInfoUnknown)
	for _, vocab := range []map[string][2]string{marvelRatings, dcRatings, genericRatings} {
		for _, src := range sortedKeys(vocab) {
			t.alias([]string{vocab[src][0]}, src)
		}
	}
	for _, src := range sortedKeys(metronToComicInfo) {
		t.alias([]string{metronToComicInfo[src]}, src)
	}
	return t
}

func buildMetronAgeRatings() *Table {
	t := newTable("metron_age_rating", []string{
		MetronUnknown, MetronEveryone, MetronTeen, MetronTeenPlus,
		MetronMature, MetronExplicit, MetronAdult,
	}, MetronUnknown)
	for _, vocab := range []map[string][2]string{marvelRatings, dcRatings, genericRatings} {
		for _, src := range sortedKeys(vocab) {
			t.alias([]string{vocab[src][1]}, src)
		}
	}
	for _, src := range sortedKeys(comicInfoToMetron) {
		t.alias([]string{comicInfoToMetron[src]}, src)
	}
	return t
}
