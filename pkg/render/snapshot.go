package render

import (
	"strings"

	"github.com/goliatone/go-wishform/pkg/form"
)

// Field is one labelled form value.
type Field struct {
	Name  string
	Label string
	Value string
}

// Group is the rendered state of one resource's field group.
type Group struct {
	Resource string
	Label    string
	Fields   []Field
	Actions  []string
}

// Table is the rendered state of one resource's results table.
type Table struct {
	Resource string
	Columns  []string
	Rows     [][]string
}

// Empty reports whether the table has never been filled.
func (t Table) Empty() bool {
	return len(t.Columns) == 0 && len(t.Rows) == 0
}

// Snapshot is everything a renderer needs to draw the console at one instant.
type Snapshot struct {
	Groups []Group
	Tables []Table
	Status string
}

// Table returns the table for resource, if any.
func (s Snapshot) Table(resource string) (Table, bool) {
	for _, t := range s.Tables {
		if t.Resource == resource {
			return t, true
		}
	}
	return Table{}, false
}

// Section ties a field group to its actions and results table.
type Section struct {
	Group   form.Group
	Actions []string
	Table   *TableBuffer
}

// Capture reads the current values of every section from port.
func Capture(port form.Port, status *StatusLine, sections ...Section) Snapshot {
	snap := Snapshot{}
	if status != nil {
		snap.Status = status.Text()
	}
	for _, section := range sections {
		values := form.Read(port, section.Group)
		group := Group{
			Resource: section.Group.Resource,
			Label:    section.Group.Label,
			Fields:   make([]Field, 0, len(section.Group.Fields)),
			Actions:  append([]string(nil), section.Actions...),
		}
		for _, name := range section.Group.Fields {
			group.Fields = append(group.Fields, Field{
				Name:  name,
				Label: FieldLabel(name),
				Value: values[name],
			})
		}
		snap.Groups = append(snap.Groups, group)
		if section.Table != nil {
			table := section.Table.View()
			table.Resource = section.Group.Resource
			snap.Tables = append(snap.Tables, table)
		}
	}
	return snap
}

var fieldLabels = map[string]string{
	form.WishlistID:        "Wishlist ID",
	form.WishlistName:      "Name",
	form.WishlistOwner:     "Owner",
	form.StartFilter:       "Joined after",
	form.EndFilter:         "Joined before",
	form.ProductID:         "Product ID",
	form.ProductWishlistID: "Wishlist ID",
	form.ProductName:       "Name",
	form.ProductQuantity:   "Quantity",
}

// FieldLabel returns the human label for a form field name.
func FieldLabel(name string) string {
	if label, ok := fieldLabels[name]; ok {
		return label
	}
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' })
	for i, word := range words {
		if strings.EqualFold(word, "id") {
			words[i] = "ID"
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
