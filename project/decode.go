package project

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Documents written by hand often leave out fields the editor always saves.
// The decoders below start every record from the editor's defaults so a
// missing "active" or "visible" does not switch a rule or object off.

func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	v := plain{Lives: 3}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Project(v)
	return nil
}

func (p *Project) UnmarshalYAML(value *yaml.Node) error {
	type plain Project
	v := plain{Lives: 3}
	if err := value.Decode(&v); err != nil {
		return err
	}
	*p = Project(v)
	return nil
}

func (l *Layer) UnmarshalJSON(data []byte) error {
	type plain Layer
	v := plain{Visible: true, Opacity: 255}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = Layer(v)
	return nil
}

func (l *Layer) UnmarshalYAML(value *yaml.Node) error {
	type plain Layer
	v := plain{Visible: true, Opacity: 255}
	if err := value.Decode(&v); err != nil {
		return err
	}
	*l = Layer(v)
	return nil
}

func (o *Object) UnmarshalJSON(data []byte) error {
	type plain Object
	v := plain{Visible: true}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Object(v)
	return nil
}

func (o *Object) UnmarshalYAML(value *yaml.Node) error {
	type plain Object
	v := plain{Visible: true}
	if err := value.Decode(&v); err != nil {
		return err
	}
	*o = Object(v)
	return nil
}

func (g *EventGroup) UnmarshalJSON(data []byte) error {
	type plain EventGroup
	v := plain{Active: true}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*g = EventGroup(v)
	return nil
}

func (g *EventGroup) UnmarshalYAML(value *yaml.Node) error {
	type plain EventGroup
	v := plain{Active: true}
	if err := value.Decode(&v); err != nil {
		return err
	}
	*g = EventGroup(v)
	return nil
}
