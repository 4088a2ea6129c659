package model

// Plant is a catalog item.  It is the only entity of the service and
// corresponds to a row in the `plants` table.  The optional columns are
// pointers so that an unsupplied value is persisted as NULL rather than
// as the zero value of its type.
//
// Fields:
//  ID    – primary key identifier, assigned by the database on insert.
//  Name  – display name of the plant (nullable).
//  Image – URL or path of the plant picture (nullable).
//  Price – catalog price (nullable).
type Plant struct {
	ID    uint64   `gorm:"primaryKey;autoIncrement"` // plants.id
	Name  *string  `gorm:"column:name"`              // plants.name
	Image *string  `gorm:"column:image"`             // plants.image
	Price *float64 `gorm:"column:price"`             // plants.price
}

// TableName pins the table name so it does not depend on gorm's naming strategy.
func (Plant) TableName() string {
	return "plants"
}

// PlantInput is the request body accepted by create and update.  A nil
// member means the key was absent (or null) in the JSON document.
type PlantInput struct {
	Name  *string  `json:"name"`
	Image *string  `json:"image"`
	Price *float64 `json:"price"`
}

// Empty reports whether no field was supplied.
func (in PlantInput) Empty() bool {
	return in.Name == nil && in.Image == nil && in.Price == nil
}

// Columns returns the supplied fields keyed by column name.  Only these
// columns are written by a partial update.
func (in PlantInput) Columns() map[string]any {
	cols := make(map[string]any, 3)
	if in.Name != nil {
		cols["name"] = *in.Name
	}
	if in.Image != nil {
		cols["image"] = *in.Image
	}
	if in.Price != nil {
		cols["price"] = *in.Price
	}
	return cols
}

// PlantJSON is the wire shape of a plant.  Absent optional fields encode
// as null.
type PlantJSON struct {
	ID    uint64   `json:"id"`
	Name  *string  `json:"name"`
	Image *string  `json:"image"`
	Price *float64 `json:"price"`
}

// Serialize converts a stored plant into its wire shape.
func Serialize(p *Plant) PlantJSON {
	return PlantJSON{ID: p.ID, Name: p.Name, Image: p.Image, Price: p.Price}
}

// SerializeAll converts a list of plants.  The result is never nil so an
// empty catalog encodes as [] rather than null.
func SerializeAll(plants []*Plant) []PlantJSON {
	out := make([]PlantJSON, 0, len(plants))
	for _, p := range plants {
		out = append(out, Serialize(p))
	}
	return out
}
