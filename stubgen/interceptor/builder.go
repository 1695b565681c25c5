package interceptor

import (
	"github.com/broady/stubkit/stubgen/classify"
	"github.com/broady/stubkit/stubgen/model"
)

// ReceiverParam is the name of the stub parameter every callback receives
// first.
const ReceiverParam = "stub"

// Builder builds the interceptors of one stub.
type Builder struct {
	// Receiver is the stub type passed to every callback.
	Receiver model.TypeRef

	Policy Policy
}

// NewBuilder returns a Builder for stub.
func NewBuilder(stub model.StubRequest, c classify.Classifier) *Builder {
	recv := model.Class(stub.Name)
	for _, tp := range stub.TypeParams {
		recv.Args = append(recv.Args, model.ParamRef(tp.Name))
	}
	return &Builder{
		Receiver: recv,
		Policy:   NewPolicy(stub.Strict, c, stub.TypeParams),
	}
}

func (b *Builder) receiver() model.Param {
	return model.Param{Name: ReceiverParam, Type: b.Receiver}
}

// withReceiver prepends the receiver to params.
func (b *Builder) withReceiver(params []model.Param) []model.Param {
	out := make([]model.Param, 0, len(params)+1)
	out = append(out, b.receiver())
	return append(out, params...)
}

func (b *Builder) action(params ...model.Param) *model.Callback {
	return &model.Callback{
		Kind:   model.CallbackAction,
		Name:   "Action",
		Params: b.withReceiver(params),
		Return: model.Void(),
	}
}

func (b *Builder) function(ret model.TypeRef, params ...model.Param) *model.Callback {
	return &model.Callback{
		Kind:   model.CallbackFunc,
		Name:   "Func",
		Params: b.withReceiver(params),
		Return: ret,
	}
}

// needsCustomCallable reports whether a standard action shape cannot
// express the signature: any by-reference or output parameter, or a
// result.
func needsCustomCallable(params []model.Param, ret model.TypeRef) bool {
	if !ret.IsVoid() {
		return true
	}
	for _, p := range params {
		if p.Mode != model.ModeValue {
			return true
		}
	}
	return false
}

// trackedArgs returns the recordable arguments: output parameters and
// parameters mentioning any of exclude are left out.
func trackedArgs(params []model.Param, exclude map[string]bool) []model.TrackedArg {
	var args []model.TrackedArg
	for _, p := range params {
		if p.Mode == model.ModeOut || p.Type.References(exclude) {
			continue
		}
		args = append(args, model.TrackedArg{Name: p.Name, Type: p.Type})
	}
	return args
}

func (b *Builder) outDefaults(p Policy, contract, member string, params []model.Param) []model.OutDefault {
	var out []model.OutDefault
	for _, prm := range params {
		if prm.Mode != model.ModeOut {
			continue
		}
		out = append(out, model.OutDefault{Param: prm.Name, Default: p.Compute(contract, member, prm.Type)})
	}
	return out
}
