package diff

// ItemData is the flattened view of one item used for comparison
type ItemData struct {
	ID          string
	Text        string
	IsHeader    bool
	Status      string
	Secondary   string
	Description string
	Detail      string
	Visible     bool
	ParentID    string
	Position    int
}

// DiffResult contains the analysis of changes between two lists
type DiffResult struct {
	NewItems      map[string]*ItemData
	DeletedItems  map[string]*ItemData
	ModifiedItems map[string]*ItemChange
}

// ItemChange describes what changed for an item
type ItemChange struct {
	Item               *ItemData
	OldItem            *ItemData
	TextChanged        bool
	OldText            string
	KindChanged        bool
	StatusChanged      bool
	OldStatus          string
	SecondaryChanged   bool
	OldSecondary       string
	DescriptionChanged bool
	DetailChanged      bool
	VisibilityChanged  bool
	StructureChanged   bool
	OldParentID        string
	OldPosition        int
}

// DiffLineType indicates the type of diff line for rendering
type DiffLineType int

const (
	DiffTypeHeader DiffLineType = iota
	DiffTypeNewSection
	DiffTypeDeletedSection
	DiffTypeModifiedSection
	DiffTypeNewItem
	DiffTypeDeletedItem
	DiffTypeModifiedItem
	DiffTypeItemDetail
	DiffTypeSummary
	DiffTypeBlank
)

// DiffLine represents a rendered line in diff output
type DiffLine struct {
	Type    DiffLineType
	Content string
	Indent  int // Indentation level
}
