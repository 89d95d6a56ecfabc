package domain

// Column is one projected field: an attribute key and its header label.
// Keys starting with "$" are JSONPath expressions over the record attributes.
type Column struct {
	Key   string
	Label string
}

// Placeholder is rendered for absent or empty values.
const Placeholder = "-"

var (
	equipmentColumns = []Column{
		{Key: FieldName, Label: "Name"},
		{Key: FieldLevel, Label: "Level"},
		{Key: FieldCategory, Label: "Category"},
		{Key: "price", Label: "Price"},
		{Key: "bulk", Label: "Bulk"},
		{Key: "hands", Label: "Hands"},
		{Key: FieldTraits, Label: "Traits"},
		{Key: FieldSource, Label: "Source"},
	}

	medicalColumns = []Column{
		{Key: FieldName, Label: "Name"},
		{Key: FieldLevel, Label: "Level"},
		{Key: "price", Label: "Price"},
		{Key: "bulk", Label: "Bulk"},
		{Key: FieldTraits, Label: "Traits"},
		{Key: FieldSource, Label: "Source"},
	}

	serviceColumns = []Column{
		{Key: FieldName, Label: "Name"},
		{Key: FieldCategory, Label: "Category"},
		{Key: "price", Label: "Price"},
		{Key: FieldSource, Label: "Source"},
	}

	spellColumns = []Column{
		{Key: FieldName, Label: "Name"},
		{Key: FieldLevel, Label: "Rank"},
		{Key: "traditions", Label: "Traditions"},
		{Key: "actions", Label: "Actions"},
		{Key: "range", Label: "Range"},
		{Key: "defense", Label: "Defense"},
		{Key: FieldTraits, Label: "Traits"},
	}

	skillColumns = []Column{
		{Key: FieldName, Label: "Name"},
		{Key: "keyAttribute", Label: "Key Attr."},
		{Key: FieldSource, Label: "Source"},
	}

	genericColumns = []Column{
		{Key: FieldName, Label: "Name"},
		{Key: FieldLevel, Label: "Level"},
		{Key: FieldCategory, Label: "Category"},
		{Key: FieldTraits, Label: "Traits"},
		{Key: FieldSource, Label: "Source"},
	}
)

// SchemaFor returns the column schema for a scope.
// Sub-scope schemas take precedence over the main type schema.
func SchemaFor(s Scope) []Column {
	var cols []Column
	switch {
	case s.MainType == MainTypeEquipment && s.SubType == "Medical":
		cols = medicalColumns
	case s.MainType == MainTypeEquipment && s.SubType == "Services":
		cols = serviceColumns
	case s.MainType == MainTypeEquipment:
		cols = equipmentColumns
	case s.MainType == MainTypeSpells:
		cols = spellColumns
	case s.MainType == MainTypeSkills:
		cols = skillColumns
	default:
		cols = genericColumns
	}
	return append([]Column(nil), cols...)
}

// DetailFields are the labelled stat fields shown in a record detail view,
// in display order.
var DetailFields = []Column{
	{Key: "price", Label: "Price"},
	{Key: "bulk", Label: "Bulk"},
	{Key: "hands", Label: "Hands"},
	{Key: "acBonus", Label: "AC Bonus"},
	{Key: "dexCap", Label: "Dex Cap"},
	{Key: "checkPenalty", Label: "Check Pen."},
	{Key: "speedPenalty", Label: "Speed Pen."},
	{Key: "strength", Label: "Str Req."},
	{Key: "upgrades", Label: "Slots"},
	{Key: "group", Label: "Group"},
	{Key: FieldCategory, Label: "Category"},
	{Key: "range", Label: "Range"},
	{Key: "area", Label: "Area"},
	{Key: "duration", Label: "Duration"},
	{Key: "defense", Label: "Defense"},
	{Key: "keyAttribute", Label: "Key Attr."},
}

// LevelLabel returns the progression label for a main type:
// "Rank" for spells, "Level" for equipment and "" for level-less types.
func LevelLabel(mt MainType) string {
	switch mt {
	case MainTypeSpells:
		return "Rank"
	case MainTypeEquipment:
		return "Level"
	default:
		return ""
	}
}
