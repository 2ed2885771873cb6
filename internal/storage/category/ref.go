package category

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"
)

// Ref points at a category either by entity ID or by display name.
// Stored budgets and transactions contain both forms.
type Ref struct {
	id   uuid.UUID
	name string
}

func RefByID(id uuid.UUID) Ref {
	return Ref{id: id}
}

func RefByName(name string) Ref {
	return Ref{name: name}
}

// ParseRef treats any valid non-nil UUID as an ID and everything else as a name.
func ParseRef(raw string) Ref {
	raw = strings.TrimSpace(raw)
	if id, err := uuid.FromString(raw); err == nil && id != uuid.Nil {
		return RefByID(id)
	}
	return RefByName(raw)
}

func (r Ref) ID() (uuid.UUID, bool) {
	return r.id, r.id != uuid.Nil
}

func (r Ref) Name() (string, bool) {
	return r.name, r.id == uuid.Nil
}

// String returns the value as it is stored.
func (r Ref) String() string {
	if r.id != uuid.Nil {
		return r.id.String()
	}
	return r.name
}

// Finder is the lookup subset of ICategoryTable used for resolution.
type Finder interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, userID uuid.UUID, name string) (*Category, error)
}

// ResolveName returns the display name for ref. ID refs are looked up and
// report false when the category no longer exists; name refs resolve to
// themselves without a lookup.
func ResolveName(ctx context.Context, finder Finder, userID uuid.UUID, ref Ref) (string, bool, error) {
	id, ok := ref.ID()
	if !ok {
		return ref.name, true, nil
	}
	found, err := finder.FindByID(ctx, userID, id)
	if err != nil {
		return "", false, err
	}
	if found == nil {
		return "", false, nil
	}
	return found.Name, true, nil
}

// Identity returns a key that is equal for two refs naming the same category,
// whichever form each one uses.
func Identity(ctx context.Context, finder Finder, userID uuid.UUID, ref Ref) (string, error) {
	if id, ok := ref.ID(); ok {
		return id.String(), nil
	}
	found, err := finder.FindByName(ctx, userID, ref.name)
	if err != nil {
		return "", err
	}
	if found != nil {
		return found.ID.String(), nil
	}
	return "name:" + ref.name, nil
}

// Index resolves refs against a preloaded set of categories.
type Index struct {
	byID   map[uuid.UUID]*Category
	byName map[string]*Category
}

func NewIndex(categories []*Category) Index {
	byID := make(map[uuid.UUID]*Category, len(categories))
	byName := make(map[string]*Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
		byName[c.Name] = c
	}
	return Index{byID: byID, byName: byName}
}

// Name resolves ref like ResolveName without touching the store.
func (i Index) Name(ref Ref) (string, bool) {
	id, ok := ref.ID()
	if !ok {
		return ref.name, true
	}
	found, ok := i.byID[id]
	if !ok {
		return "", false
	}
	return found.Name, true
}

// ID returns the ID of the category ref points at, looking names up.
func (i Index) ID(ref Ref) (uuid.UUID, bool) {
	if id, ok := ref.ID(); ok {
		return id, true
	}
	found, ok := i.byName[ref.name]
	if !ok {
		return uuid.Nil, false
	}
	return found.ID, true
}
