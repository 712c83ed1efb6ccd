package kali

import "context"

type (
	// Relation is a foreign key from owner entity O to target entity T.
	// Only the owning side declares it; the target side resolves its end
	// through the same value:
	//
	//	var PostUser = kali.BelongsTo(posts, posts.Col("user_id"), users)
	//
	//	func (p Post) User() kali.Reference[User]     { return PostUser.Reference(p) }
	//	func (u User) Posts() kali.Collection[Post]   { return PostUser.Collection(u) }
	Relation[O, T any] struct {
		owner      *Model[O]
		target     *Model[T]
		foreignKey Col[O]
		references Col[T]
	}

	// InverseFilterer is what the owning side of a relation exposes to the
	// referenced side: the owner's model and the filter selecting the
	// owner rows that point at a given target.
	InverseFilterer[O, T any] interface {
		Owner() *Model[O]
		InverseFilter(target T) Expr[Col[O]]
	}

	// Reference is a lazy handle to at most one related row.
	Reference[E any] struct {
		model  *Model[E]
		filter Expr[Col[E]]
	}

	// Collection is a lazy handle to any number of related rows.
	Collection[E any] struct {
		model  *Model[E]
		filter Expr[Col[E]]
	}
)

// BelongsTo declares that foreignKey of owner references a column of
// target, by default its primary key. It panics if a column does not
// belong to its model.
func BelongsTo[O, T any](owner *Model[O], foreignKey Col[O], target *Model[T], references ...Col[T]) *Relation[O, T] {
	r := &Relation[O, T]{
		owner:      owner,
		target:     target,
		foreignKey: owner.Col(string(foreignKey)),
		references: target.PrimaryKey(),
	}
	if len(references) > 0 {
		r.references = target.Col(string(references[0]))
	}
	return r
}

// Owner returns the model holding the foreign key.
func (r *Relation[O, T]) Owner() *Model[O] { return r.owner }

// Target returns the referenced model.
func (r *Relation[O, T]) Target() *Model[T] { return r.target }

// ForeignKey returns the foreign key column.
func (r *Relation[O, T]) ForeignKey() Col[O] { return r.foreignKey }

// References returns the referenced column.
func (r *Relation[O, T]) References() Col[T] { return r.references }

// Reference returns the target row the owner points at: the row whose
// referenced column equals the owner's foreign key value.
func (r *Relation[O, T]) Reference(owner O) Reference[T] {
	return NewReference(r.target, r.references.Eq(r.owner.Get(owner, r.foreignKey)))
}

// InverseFilter returns the predicate "foreign key = referenced value of
// target" over the owner's columns.
func (r *Relation[O, T]) InverseFilter(target T) Expr[Col[O]] {
	return r.foreignKey.Eq(r.target.Get(target, r.references))
}

// Inverse returns the single owner row pointing at target, for one-to-one
// relations.
func (r *Relation[O, T]) Inverse(target T) Reference[O] {
	return ReferencedBy[O, T](r, target)
}

// Collection returns every owner row pointing at target.
func (r *Relation[O, T]) Collection(target T) Collection[O] {
	return CollectionOf[O, T](r, target)
}

// ReferencedBy returns the owner row of rel that points at target.
func ReferencedBy[O, T any](rel InverseFilterer[O, T], target T) Reference[O] {
	return NewReference(rel.Owner(), rel.InverseFilter(target))
}

// CollectionOf returns every owner row of rel that points at target.
func CollectionOf[O, T any](rel InverseFilterer[O, T], target T) Collection[O] {
	return NewCollection(rel.Owner(), rel.InverseFilter(target))
}

// NewReference returns a Reference to the row of m matching filter.
func NewReference[E any](m *Model[E], filter Expr[Col[E]]) Reference[E] {
	return Reference[E]{model: m, filter: filter}
}

// Filter returns the predicate selecting the referenced row.
func (r Reference[E]) Filter() Expr[Col[E]] { return r.filter }

// Query returns a SELECT of the referenced row that more filters can be
// added to.
func (r Reference[E]) Query() *SelectBuilder[Col[E]] {
	return r.model.Query().Filter(r.filter)
}

// Load fetches the referenced row. ErrNoRows is returned if there is none.
func (r Reference[E]) Load(ctx context.Context, ex Executor) (e E, err error) {
	err = r.Query().FetchOne(ctx, ex, &e)
	return
}

// LoadOptional fetches the referenced row if it exists.
func (r Reference[E]) LoadOptional(ctx context.Context, ex Executor) (e E, found bool, err error) {
	found, err = r.Query().FetchOptional(ctx, ex, &e)
	return
}

// NewCollection returns a Collection of the rows of m matching filter.
func NewCollection[E any](m *Model[E], filter Expr[Col[E]]) Collection[E] {
	return Collection[E]{model: m, filter: filter}
}

// Filter returns the predicate selecting the rows.
func (c Collection[E]) Filter() Expr[Col[E]] { return c.filter }

// Query returns a SELECT of the rows that more filters, ordering or a limit
// can be added to.
func (c Collection[E]) Query() *SelectBuilder[Col[E]] {
	return c.model.Query().Filter(c.filter)
}

// LoadAll fetches every row of the collection.
func (c Collection[E]) LoadAll(ctx context.Context, ex Executor) (out []E, err error) {
	out = []E{}
	err = c.Query().FetchAll(ctx, ex, &out)
	return
}
