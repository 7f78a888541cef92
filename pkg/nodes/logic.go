package nodes

import (
	"fmt"

	"github.com/aretw0/actiongraph/pkg/domain"
)

type branch struct {
	domain.Base
	condition *domain.Input[bool]
	yes, no   domain.Signal
}

func newBranch(id string, _ Env) domain.Node {
	n := &branch{Base: domain.NewBase(id, "Branch"), condition: domain.NewInput(false)}
	s := n.Sockets()
	s.Entry("In", n.in)
	s.Signal("True", &n.yes)
	s.Signal("False", &n.no)
	s.In("Condition", n.condition)
	return n
}

func (n *branch) in() {
	if n.condition.Read() {
		n.yes.Fire()
		return
	}
	n.no.Fire()
}

type boolFold struct {
	domain.Base
	values *domain.ArrayInput[bool]
	result *domain.Output[bool]
	out    domain.Signal
	fold   func(*domain.ArrayInput[bool]) bool
}

func newBoolFold(kind string, fold func(*domain.ArrayInput[bool]) bool) Factory {
	return func(id string, _ Env) domain.Node {
		n := &boolFold{
			Base:   domain.NewBase(id, kind),
			values: domain.NewArrayInput(false),
			result: domain.NewOutput[bool](),
			fold:   fold,
		}
		s := n.Sockets()
		s.Entry("In", n.in)
		s.Signal("Out", &n.out)
		s.In("Values", n.values)
		s.Out("Result", n.result)
		return n
	}
}

func (n *boolFold) in() {
	n.result.Write(n.fold(n.values))
	n.out.Fire()
}

type notBool struct {
	domain.Base
	a      *domain.Input[bool]
	result *domain.Output[bool]
	out    domain.Signal
}

func newNotBool(id string, _ Env) domain.Node {
	n := &notBool{Base: domain.NewBase(id, "NotBool"), a: domain.NewInput(false), result: domain.NewOutput[bool]()}
	s := n.Sockets()
	s.Entry("In", n.in)
	s.Signal("Out", &n.out)
	s.In("A", n.a)
	s.Out("Result", n.result)
	return n
}

func (n *notBool) in() {
	n.result.Write(!n.a.Read())
	n.out.Fire()
}

// SequenceOutputs is the number of outputs of a Sequence node.
const SequenceOutputs = 4

// sequence fans control out: each output runs to completion before the next fires.
type sequence struct {
	domain.Base
	outs [SequenceOutputs]domain.Signal
}

func newSequence(id string, _ Env) domain.Node {
	n := &sequence{Base: domain.NewBase(id, "Sequence")}
	s := n.Sockets()
	s.Entry("In", n.in)
	for i := range n.outs {
		s.Signal(fmt.Sprintf("Out%d", i), &n.outs[i])
	}
	return n
}

func (n *sequence) in() {
	for i := range n.outs {
		n.outs[i].Fire()
	}
}

func registerLogic(c *Catalog) {
	c.Register("Branch", CategoryLogic, newBranch)
	c.Register("AndBool", CategoryLogic, newBoolFold("AndBool", domain.All))
	c.Register("OrBool", CategoryLogic, newBoolFold("OrBool", domain.Any))
	c.Register("NotBool", CategoryLogic, newNotBool)
	c.Register("Sequence", CategoryFlow, newSequence)
}
