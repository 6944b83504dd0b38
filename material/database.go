package material

import (
	"fmt"
	"github.com/notargets/FVMetal/ad"
	"sort"
)

// Database holds the current laws of the metal materials known to a run
type Database struct {
	laws map[string]CurrentLaw
}

// NewDatabase returns a database preloaded with the given laws, keyed by
// material name
func NewDatabase(laws map[string]CurrentLaw) *Database {
	db := &Database{laws: make(map[string]CurrentLaw, len(laws))}
	for name, law := range laws {
		db.laws[name] = law
	}
	return db
}

// Register adds or replaces the law of a material
func (db *Database) Register(material string, law CurrentLaw) {
	db.laws[material] = law
}

// Materials returns the sorted material names
func (db *Database) Materials() []string {
	names := make([]string, 0, len(db.laws))
	for name := range db.laws {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bind returns the law of a material wrapped with its AD width state. One
// Binding is created per region.
func (db *Database) Bind(material string) (*Binding, error) {
	law, ok := db.laws[material]
	if !ok {
		return nil, fmt.Errorf("material %q not found in database", material)
	}
	return &Binding{CurrentLaw: law, material: material, width: ad.Node}, nil
}

// Binding is a material law as seen by one region. The assembler announces
// the tangent width it is about to use with SetADWidth; CurrentAD refuses
// values of any other width.
type Binding struct {
	CurrentLaw
	material string
	width    ad.Width
}

// Material returns the bound material name
func (b *Binding) Material() string { return b.material }

// SetADWidth synchronises the binding with the tangent width of the next
// evaluations
func (b *Binding) SetADWidth(w ad.Width) {
	if w < 1 {
		panic(fmt.Sprintf("material: invalid AD width %d", w))
	}
	b.width = w
}

// ADWidth returns the current tangent width
func (b *Binding) ADWidth() ad.Width { return b.width }

// CurrentAD evaluates the law on AD values of the synchronised width
func (b *Binding) CurrentAD(E ad.Scalar, T float64) ad.Scalar {
	if E.Width() != b.width {
		panic(fmt.Sprintf("material %s: AD width %d, binding synchronised to %d",
			b.material, E.Width(), b.width))
	}
	return b.CurrentLaw.CurrentAD(E, T)
}
