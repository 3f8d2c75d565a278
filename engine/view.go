package engine

// ============================================================================
// RECORD VIEW: Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns consumer data. It reads through this interface.
//
// Implementations:
//   DomainView[T] : reads typed structs via accessor functions (zero-copy)
//   SubView       : filtered subset (indices into parent, zero-copy)
//
// Consumers register accessors once at init; engine reads many times.
// ============================================================================

// RecordView provides indexed access to a dataset.
// The engine calls Dimension/Measure in tight loops, so keep implementations fast.
type RecordView interface {
	Len() int
	Dimension(index int, key string) string
	Measure(index int, key string) float64
	DimensionKeys() []string
	MeasureKeys() []string
}

// Indexed is implemented by views that can map their positions back to the
// positions of the underlying data slice.
type Indexed interface {
	SourceIndex(i int) int
}

// SourceIndices returns, for every row of view, the index into the original
// data slice it was bound from.
func SourceIndices(view RecordView) []int {
	out := make([]int, view.Len())
	ix, ok := view.(Indexed)
	for i := range out {
		if ok {
			out[i] = ix.SourceIndex(i)
		} else {
			out[i] = i
		}
	}
	return out
}

// Select materializes the rows of view from the slice it was bound to.
func Select[T any](data []T, view RecordView) []T {
	idx := SourceIndices(view)
	out := make([]T, 0, len(idx))
	for _, i := range idx {
		if i >= 0 && i < len(data) {
			out = append(out, data[i])
		}
	}
	return out
}

// ============================================================================
// SUB VIEW: filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent, no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.indices) {
		return 0
	}
	return v.parent.Measure(v.indices[i], key)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// SourceIndex resolves through nested sub-views down to the bound slice.
func (v *SubView) SourceIndex(i int) int {
	if i < 0 || i >= len(v.indices) {
		return -1
	}
	if ix, ok := v.parent.(Indexed); ok {
		return ix.SourceIndex(v.indices[i])
	}
	return v.indices[i]
}

// ============================================================================
// DOMAIN ADAPTER: Zero-copy typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[SleepRecord]().
//	    Dimension("date", func(r SleepRecord) string { return r.Date }).
//	    Measure("duration", func(r SleepRecord) float64 { return r.Duration })
//
//	view := adapter.Bind(records)
//	groups := engine.GroupAndAggregate(view, "date", "duration", "avg", "date_asc", 0)
//
// ============================================================================

// DomainAdapter builds a RecordView from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	dimOrder []string
	mesOrder []string
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) float64),
	}
}

// Dimension registers a dimension accessor.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	if _, exists := a.dims[key]; !exists {
		a.dimOrder = append(a.dimOrder, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers a measure accessor.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) float64) *DomainAdapter[T] {
	if _, exists := a.meas[key]; !exists {
		a.mesOrder = append(a.mesOrder, key)
	}
	a.meas[key] = fn
	return a
}

// Bind creates a RecordView from a data slice. Zero-copy, it holds a reference.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{
		data:     data,
		dims:     a.dims,
		meas:     a.meas,
		dimKeys:  a.dimOrder,
		measKeys: a.mesOrder,
	}
}

// DomainView reads typed struct fields via registered accessor functions.
type DomainView[T any] struct {
	data     []T
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
	dimKeys  []string
	measKeys []string
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.data) {
		return ""
	}
	if fn, ok := v.dims[key]; ok {
		return fn(v.data[i])
	}
	return ""
}

func (v *DomainView[T]) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.data) {
		return 0
	}
	if fn, ok := v.meas[key]; ok {
		return fn(v.data[i])
	}
	return 0
}

func (v *DomainView[T]) DimensionKeys() []string { return v.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.measKeys }
func (v *DomainView[T]) SourceIndex(i int) int   { return i }
