package generator

// Fixed value domains for the randomized egg fields

var henBreedPairs = [][]string{
	{"Rhode Island Red", "New Hampshire Red"},
	{"Leghorn", "Ancona"},
	{"Plymouth Rock", "Wyandotte"},
	{"Orpington", "Sussex"},
	{"Ameraucana", "Easter Egger"},
}

var chickBreeds = []string{
	"Rhode Island Red", "Leghorn", "Plymouth Rock",
	"Orpington", "Ameraucana", "Sussex",
}

var breedConfidences = []string{"high", "medium", "low"}

var (
	plumageColors   = []string{"red-brown", "white", "black", "buff", "barred"}
	combTypes       = []string{"single", "rose", "pea", "walnut"}
	bodyTypes       = []string{"large/heavy", "medium", "small/bantam"}
	featherPatterns = []string{"solid", "laced", "barred", "speckled"}
	legColors       = []string{"yellow", "slate", "white", "black"}
)

var (
	eggColors     = []string{"brown", "white", "cream", "blue"}
	eggShapes     = []string{"oval", "round", "elongated"}
	eggSizes      = []string{"medium", "large", "extra-large"}
	shellTextures = []string{"smooth", "rough", "porous"}
	cleanliness   = []string{"clean", "slightly dirty"}
	overallGrades = []string{"A", "B"}
)
