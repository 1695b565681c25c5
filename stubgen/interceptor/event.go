package interceptor

import "github.com/broady/stubkit/stubgen/model"

// Event builds the interceptor of an event. Subscriptions are counted by
// the renderer's runtime; the model fixes the raise signature, what a raise
// records and the result of raising with no subscriber.
func (b *Builder) Event(fe model.FlatEvent, name string) model.EventInterceptor {
	e := fe.Event
	ei := model.EventInterceptor{
		ID:          fe.ID,
		Name:        name,
		Event:       e.Name,
		Contract:    e.Contract,
		Sources:     fe.Sources,
		Shape:       e.Shape,
		Handler:     e.Handler,
		RaiseReturn: model.Void(),
	}

	sender := model.Param{Name: "sender", Type: model.Class("object").OrNull()}
	switch e.Shape {
	case model.EventPlain:
		ei.RaiseParams = []model.Param{sender, {Name: "e", Type: model.Class("EventArgs")}}
	case model.EventTyped:
		payload := model.Class("EventArgs")
		if e.Payload != nil {
			payload = *e.Payload
		}
		ei.RaiseParams = []model.Param{sender, {Name: "e", Type: payload}}
	case model.EventAction:
		ei.RaiseParams = e.Args
	case model.EventFunc, model.EventCustom:
		ei.RaiseParams = e.Args
		ei.RaiseReturn = e.Return
	}

	ei.Tracking = model.TrackArgs(trackedArgs(ei.RaiseParams, nil))
	ei.Default = b.Policy.Compute(e.Contract, e.Name, ei.RaiseReturn)
	return ei
}
