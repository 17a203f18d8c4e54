package bounded

// Data is the persisted form of a bounded value.
type Data[T Number] struct {
	Value T `json:"value" yaml:"value"`
	Min   T `json:"min" yaml:"min"`
	Max   T `json:"max" yaml:"max"`
}

// Data returns the (value, min, max) triple of v.
func (v Value[T]) Data() Data[T] {
	return Data[T]{Value: v.value, Min: v.min, Max: v.max}
}

// FromData rebuilds a bounded value from its persisted form.
// Returns errors.InvalidBounds when the stored min exceeds the stored max.
func FromData[T Number](d Data[T]) (Value[T], error) {
	return New(d.Value, d.Max, d.Min)
}
