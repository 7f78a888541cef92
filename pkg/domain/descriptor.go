package domain

// Descriptor is the declarative socket table of a node kind.
// Editors and loaders introspect it; the execution path never reads it.
type Descriptor struct {
	Kind      string             `json:"kind" yaml:"kind"`
	Category  string             `json:"category,omitempty" yaml:"category,omitempty"`
	Entries   []string           `json:"entries" yaml:"entries"`
	Signals   []string           `json:"signals" yaml:"signals"`
	Variables []SocketDescriptor `json:"variables" yaml:"variables"`
}

// SocketDescriptor describes one variable socket.
type SocketDescriptor struct {
	Name      string    `json:"name" yaml:"name"`
	Direction Direction `json:"direction" yaml:"direction"`
	Type      ValueType `json:"type" yaml:"type"`
	Array     bool      `json:"array" yaml:"array"`
}

// HasEntry reports whether the kind declares the entry point name.
func (d Descriptor) HasEntry(name string) bool {
	for _, e := range d.Entries {
		if e == name {
			return true
		}
	}
	return false
}

// HasSignal reports whether the kind declares the signal output name.
func (d Descriptor) HasSignal(name string) bool {
	for _, s := range d.Signals {
		if s == name {
			return true
		}
	}
	return false
}

// Variable looks up a variable socket by name.
func (d Descriptor) Variable(name string) (SocketDescriptor, bool) {
	for _, v := range d.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return SocketDescriptor{}, false
}
