package enums

// ComicInfo credit columns.
const (
	RoleColorist    = "Colorist"
	RoleCoverArtist = "CoverArtist"
	RoleEditor      = "Editor"
	RoleInker       = "Inker"
	RoleLetterer    = "Letterer"
	RolePenciller   = "Penciller"
	RoleTranslator  = "Translator"
	RoleWriter      = "Writer"
)

// CoMet credit elements.
const (
	CoMetColorist      = "colorist"
	CoMetCoverDesigner = "coverDesigner"
	CoMetCreator       = "creator"
	CoMetEditor        = "editor"
	CoMetInker         = "inker"
	CoMetLetterer      = "letterer"
	CoMetPenciller     = "penciller"
	CoMetWriter        = "writer"
)

// MetronRoleValues is the closed Metron role vocabulary.
var MetronRoleValues = []string{
	"Writer", "Script", "Story", "Plot", "Interviewer", "Artist", "Penciller",
	"Breakdowns", "Illustrator", "Layouts", "Inker", "Embellisher", "Finishes",
	"Ink Assists", "Colorist", "Color Separations", "Color Assists",
	"Color Flats", "Digital Art Technician", "Gray Tone", "Letterer", "Cover",
	"Editor", "Consulting Editor", "Assistant Editor", "Associate Editor",
	"Group Editor", "Senior Editor", "Managing Editor", "Collection Editor",
	"Production", "Designer", "Logo Design", "Translator", "Supervising Editor",
	"Executive Editor", "Editor In Chief", "President", "Publisher",
	"Chief Creative Officer", "Executive Producer", "Other",
}

// ComicBookInfoRoleValues is the role vocabulary ComicBookInfo writers use.
var ComicBookInfoRoleValues = []string{
	"Artist", "Colorer", "Cover Artist", "Editor", "Inker", "Letterer",
	"Other", "Penciller", "Translator", "Writer",
}

var metronEditorRoles = []string{
	"Editor", "Consulting Editor", "Assistant Editor", "Associate Editor",
	"Group Editor", "Senior Editor", "Managing Editor", "Collection Editor",
	"Production", "Supervising Editor", "Executive Editor", "Editor In Chief",
}

// roleSources lists, per ComicInfo column, the spellings that collapse into
// it. One source may feed several columns.
var roleSources = map[string][]string{
	RoleColorist: {
		"Colourist", "colorer", "colourer", "colors", "colours", "painting",
		"painter", "Color Separations", "Color Assists", "Color Flats",
		"Gray Tone",
	},
	RoleCoverArtist: {"covers", "coverDesigner", "Cover", "Cover Artist"},
	RoleEditor:      append([]string{"edits", "editing"}, metronEditorRoles...),
	RoleInker: {
		"finishes", "inks", "painting", "painter", "Embellisher", "Ink Assists",
		"Artist",
	},
	RoleLetterer: {"letters"},
	RolePenciller: {
		"breakdowns", "pencils", "painting", "painter", "Illustrator",
		"Layouts", "Artist",
	},
	RoleTranslator: {"translation"},
	RoleWriter: {
		"Author", "plotter", "scripter", "script", "Story", "Plot",
		"Interviewer",
	},
}

var cometColumn = map[string]string{
	RoleColorist:    CoMetColorist,
	RoleCoverArtist: CoMetCoverDesigner,
	RoleEditor:      CoMetEditor,
	RoleInker:       CoMetInker,
	RoleLetterer:    CoMetLetterer,
	RolePenciller:   CoMetPenciller,
	RoleTranslator:  "",
	RoleWriter:      CoMetWriter,
}

// ComicInfoRoles maps any role onto the ComicInfo credit columns. A single
// role may fill several columns ("Artist" is both penciller and inker).
// Unmapped roles are dropped.
var ComicInfoRoles = buildComicInfoRoles()

// CoMetRoles maps any role onto CoMet credit elements. Unmapped roles are
// dropped.
var CoMetRoles = buildCoMetRoles()

// MetronRoles maps any role onto the Metron vocabulary. Unmapped roles
// become "Other".
var MetronRoles = buildMetronRoles()

func buildComicInfoRoles() *Table {
	t := newTable("comicinfo_role", []string{
		RoleColorist, RoleCoverArtist, RoleEditor, RoleInker, RoleLetterer,
		RolePenciller, RoleTranslator, RoleWriter,
	})
	for _, target := range sortedKeys(roleSources) {
		t.aliasAdd(target, roleSources[target]...)
	}
	t.aliasAdd(RoleCoverArtist, CoMetCoverDesigner)
	return t
}

func buildCoMetRoles() *Table {
	t := newTable("comet_role", []string{
		CoMetColorist, CoMetCoverDesigner, CoMetCreator, CoMetEditor,
		CoMetInker, CoMetLetterer, CoMetPenciller, CoMetWriter,
	})
	for _, column := range sortedKeys(roleSources) {
		target := cometColumn[column]
		if target == "" {
			continue
		}
		t.aliasAdd(target, column)
		t.aliasAdd(target, roleSources[column]...)
	}
	return t
}

func buildMetronRoles() *Table {
	t := newTable("metron_role", MetronRoleValues, "Other")
	t.alias([]string{"Colorist"}, CoMetColorist, "Colourist", "colorer", "colourer", "colors", "colours")
	t.alias([]string{"Cover"}, CoMetCoverDesigner, RoleCoverArtist, "Cover Artist", "covers")
	t.alias([]string{"Chief Creative Officer"}, CoMetCreator)
	t.alias([]string{"Inker"}, "inks")
	t.alias([]string{"Penciller"}, "pencils")
	t.alias([]string{"Letterer"}, "letters")
	t.alias([]string{"Writer"}, "Author", "scripter")
	t.alias([]string{"Plot"}, "plotter")
	t.alias([]string{"Translator"}, "translation")
	t.alias([]string{"Editor"}, "edits", "editing")
	return t
}
