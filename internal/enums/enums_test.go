package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComicInfoAgeRatings(t *testing.T) {
	tests := map[string]string{
		"T+":              ComicInfoMature17,
		"t+":              ComicInfoMature17,
		"PSR":             ComicInfoMA15,
		"All Ages":        ComicInfoEveryone,
		"Teen Plus":       ComicInfoMA15,
		"Adult":           ComicInfoX18,
		"violence":        ComicInfoAdultsOnly,
		"Mature 17+":      ComicInfoMature17,
		"rating pending":  ComicInfoPending,
		"no such rating":  ComicInfoUnknown,
		"ExplicitContent": ComicInfoX18,
	}
	for input, want := range tests {
		assert.Equal(t, want, ComicInfoAgeRatings.MapOne(input), input)
	}
}

func TestMetronAgeRatings(t *testing.T) {
	tests := map[string]string{
		"T+":              MetronTeenPlus,
		"MA15+":           MetronTeenPlus,
		"Mature 17+":      MetronMature,
		"X18+":            MetronExplicit,
		"Adults Only 18+": MetronAdult,
		"Kids to Adults":  MetronEveryone,
		"Teen":            MetronTeen,
		"whatever":        MetronUnknown,
	}
	for input, want := range tests {
		assert.Equal(t, want, MetronAgeRatings.MapOne(input), input)
	}
}

func TestComicInfoRolesOneToMany(t *testing.T) {
	assert.ElementsMatch(t, []string{RoleInker, RolePenciller}, ComicInfoRoles.Map("Artist"))
	assert.ElementsMatch(t, []string{RoleColorist, RoleInker, RolePenciller}, ComicInfoRoles.Map("painter"))
	assert.Equal(t, []string{RoleWriter}, ComicInfoRoles.Map("writer"))
	assert.Equal(t, []string{RoleCoverArtist}, ComicInfoRoles.Map("Cover Artist"))
	assert.Equal(t, []string{RoleEditor}, ComicInfoRoles.Map("Managing Editor"))
	assert.Nil(t, ComicInfoRoles.Map("Catering"))
}

func TestCoMetRoles(t *testing.T) {
	assert.Equal(t, []string{CoMetCoverDesigner}, CoMetRoles.Map("CoverArtist"))
	assert.Equal(t, []string{CoMetWriter}, CoMetRoles.Map("Script"))
	assert.Equal(t, []string{CoMetCreator}, CoMetRoles.Map("creator"))
	assert.Nil(t, CoMetRoles.Map("Translator"))
}

func TestMetronRolesFallBackToOther(t *testing.T) {
	assert.Equal(t, "Cover", MetronRoles.MapOne("CoverArtist"))
	assert.Equal(t, "Chief Creative Officer", MetronRoles.MapOne("creator"))
	assert.Equal(t, "Editor In Chief", MetronRoles.MapOne("editor in chief"))
	assert.Equal(t, "Other", MetronRoles.MapOne("Catering"))
}

func TestFormats(t *testing.T) {
	assert.Equal(t, "Trade Paperback", NormalizeFormat("tpb"))
	assert.Equal(t, "Limited Series", NormalizeFormat("limited series"))
	assert.Equal(t, "Floppy", NormalizeFormat(" Floppy "))
	assert.Equal(t, "Omnibus", MetronFormats.MapOne("Box Set"))
	assert.Equal(t, "Annual", MetronFormats.MapOne("King Sized"))
	assert.Equal(t, "Single Issue", MetronFormats.MapOne("Web Rip"))
}

func TestReadingDirections(t *testing.T) {
	assert.Equal(t, DirectionRTL, ReadingDirections.MapOne("RightToLeft"))
	assert.Equal(t, DirectionTTB, ReadingDirections.MapOne("ttb"))
	assert.Equal(t, "", ReadingDirections.MapOne("diagonal"))
	assert.Equal(t, "BottomToTop", DirectionName("btt"))
}

func TestPageTypes(t *testing.T) {
	assert.Equal(t, PageFrontCover, PageTypes.MapOne("frontcover"))
	assert.Equal(t, PageBackCover, PageTypes.MapOne("Back Cover"))
	assert.Equal(t, PageOther, PageTypes.MapOne("centerfold"))
}

func TestValuesIsACopy(t *testing.T) {
	values := PageTypes.Values()
	values[0] = "mutated"
	assert.Equal(t, PageFrontCover, PageTypes.Values()[0])
}
