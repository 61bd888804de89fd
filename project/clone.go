package project

// Clone returns a deep copy of p. Play sessions run against a clone so the
// authored document is never touched by the simulation.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	out := *p
	out.GlobalValues = cloneSlice(p.GlobalValues)
	out.GlobalStrings = cloneSlice(p.GlobalStrings)
	out.Sounds = cloneSlice(p.Sounds)
	out.Fonts = cloneSlice(p.Fonts)
	if p.Frames != nil {
		out.Frames = make([]Frame, len(p.Frames))
		for i := range p.Frames {
			out.Frames[i] = p.Frames[i].Clone()
		}
	}
	if p.ObjectLibrary != nil {
		out.ObjectLibrary = make([]Object, len(p.ObjectLibrary))
		for i := range p.ObjectLibrary {
			out.ObjectLibrary[i] = p.ObjectLibrary[i].Clone()
		}
	}
	return &out
}

func (f Frame) Clone() Frame {
	out := f
	out.Layers = cloneSlice(f.Layers)
	if f.Objects != nil {
		out.Objects = make([]Object, len(f.Objects))
		for i := range f.Objects {
			out.Objects[i] = f.Objects[i].Clone()
		}
	}
	if f.Events != nil {
		out.Events = make([]EventGroup, len(f.Events))
		for i := range f.Events {
			out.Events[i] = f.Events[i].Clone()
		}
	}
	return out
}

func (o Object) Clone() Object {
	out := o
	out.Values = cloneSlice(o.Values)
	out.Strings = cloneSlice(o.Strings)
	if o.Animations != nil {
		out.Animations = make(map[string][]int, len(o.Animations))
		for k, v := range o.Animations {
			out.Animations[k] = cloneSlice(v)
		}
	}
	if o.Flags != nil {
		out.Flags = cloneMap(o.Flags)
	}
	return out
}

func (g EventGroup) Clone() EventGroup {
	out := g
	if g.Conditions != nil {
		out.Conditions = make([]Condition, len(g.Conditions))
		for i, c := range g.Conditions {
			c.Params = c.Params.Clone()
			out.Conditions[i] = c
		}
	}
	if g.Actions != nil {
		out.Actions = make([]Action, len(g.Actions))
		for i, a := range g.Actions {
			a.Params = a.Params.Clone()
			out.Actions[i] = a
		}
	}
	return out
}

func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	return Params(cloneMap(p))
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case Params:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
