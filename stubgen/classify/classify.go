// Package classify decides how a type can yield a safe default value.
//
// Classify is a pure function of the type shape: the same TypeRef always
// classifies the same way regardless of where or when it is asked.
package classify

import "github.com/broady/stubkit/stubgen/model"

// Result is the classification of one type.
type Result struct {
	Class model.Classification

	// Substitute is the concrete type to construct when the declared type
	// is a well-known collection contract or an array. Nil means the type
	// itself is constructed.
	Substitute *model.TypeRef

	// Async is set when the type is an asynchronous result container; the
	// default is then an already-completed instance.
	Async model.AsyncKind

	// Inner classifies the container's result type for Task<T> and
	// ValueTask<T>.
	Inner *Result
}

// Classifier classifies types. Func and *Memo implement it.
type Classifier interface {
	Classify(t model.TypeRef) Result
}

// Func adapts a function to the Classifier interface.
type Func func(model.TypeRef) Result

// Classify calls f(t).
func (f Func) Classify(t model.TypeRef) Result { return f(t) }

// Default is the stateless classifier.
var Default Classifier = Func(Classify)

// Classify returns the classification of t.
//
// Order: asynchronous containers wrap their inner classification; value
// types are ZeroValue; nullable references are NullAllowed; references with
// a parameterless construction path are Constructible; well-known
// collection contracts and arrays are Constructible through a standard
// substitute; everything else is Unsatisfiable.
func Classify(t model.TypeRef) Result {
	if t.Async != model.AsyncNone {
		return classifyAsync(t)
	}

	switch t.Kind {
	case model.TypeVoid, model.TypeValue:
		return Result{Class: model.ClassZeroValue}
	}

	if t.Nullable {
		return Result{Class: model.ClassNullAllowed}
	}

	switch t.Kind {
	case model.TypeClass:
		if t.DefaultConstructible {
			return Result{Class: model.ClassConstructible}
		}
	case model.TypeArray:
		sub := t
		return Result{Class: model.ClassConstructible, Substitute: &sub}
	case model.TypeParameter:
		// Statically unknown; generic builders resolve these per call site.
		return Result{Class: model.ClassUnsatisfiable}
	}

	if sub, ok := Substitute(t); ok {
		return Result{Class: model.ClassConstructible, Substitute: &sub}
	}

	return Result{Class: model.ClassUnsatisfiable}
}

func classifyAsync(t model.TypeRef) Result {
	if !t.Async.HasResult() {
		return Result{Class: model.ClassConstructible, Async: t.Async}
	}
	if len(t.Args) == 0 {
		// Malformed container without a result type argument.
		return Result{Class: model.ClassUnsatisfiable, Async: t.Async}
	}
	inner := Classify(t.Args[0])
	return Result{Class: inner.Class, Async: t.Async, Inner: &inner}
}

// Substitute returns the standard concrete type for a well-known
// collection contract.
func Substitute(t model.TypeRef) (model.TypeRef, bool) {
	switch t.Collection {
	case model.CollectionSequence, model.CollectionReadOnlyCollection, model.CollectionCollection,
		model.CollectionReadOnlyList, model.CollectionList:
		if len(t.Args) != 1 {
			return model.TypeRef{}, false
		}
		return concrete("List", t.Args...), true
	case model.CollectionReadOnlyMap, model.CollectionMap:
		if len(t.Args) != 2 {
			return model.TypeRef{}, false
		}
		return concrete("Dictionary", t.Args...), true
	case model.CollectionReadOnlySet, model.CollectionSet:
		if len(t.Args) != 1 {
			return model.TypeRef{}, false
		}
		return concrete("HashSet", t.Args...), true
	}
	return model.TypeRef{}, false
}

func concrete(name string, args ...model.TypeRef) model.TypeRef {
	t := model.Class(name, args...)
	t.DefaultConstructible = true
	return t
}

// ClassifyParam classifies a reference to the type parameter tp from its
// constraints alone: struct → ZeroValue, nullable → NullAllowed,
// new() → Constructible, otherwise Unsatisfiable.
func ClassifyParam(tp model.TypeParam, nullable bool) Result {
	switch {
	case tp.Struct:
		return Result{Class: model.ClassZeroValue}
	case nullable:
		return Result{Class: model.ClassNullAllowed}
	case tp.New:
		return Result{Class: model.ClassConstructible}
	default:
		return Result{Class: model.ClassUnsatisfiable}
	}
}
