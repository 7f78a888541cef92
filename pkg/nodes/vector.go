package nodes

import "github.com/aretw0/actiongraph/pkg/domain"

type vectorFold struct {
	domain.Base
	a, b   *domain.ArrayInput[domain.Vector2]
	result *domain.Output[domain.Vector2]
	out    domain.Signal
	eval   func(a, b domain.Vector2) domain.Vector2
}

func newVectorFold(kind string, eval func(a, b domain.Vector2) domain.Vector2) Factory {
	return func(id string, _ Env) domain.Node {
		n := &vectorFold{
			Base:   domain.NewBase(id, kind),
			a:      domain.NewArrayInput(domain.Vector2{}),
			b:      domain.NewArrayInput(domain.Vector2{}),
			result: domain.NewOutput[domain.Vector2](),
			eval:   eval,
		}
		s := n.Sockets()
		s.Entry("In", n.in)
		s.Signal("Out", &n.out)
		s.In("A", n.a)
		s.In("B", n.b)
		s.Out("Result", n.result)
		return n
	}
}

func (n *vectorFold) in() {
	n.result.Write(n.eval(domain.SumVector2(n.a), domain.SumVector2(n.b)))
	n.out.Fire()
}

// scaleVector2 multiplies the summed vector by the product of every factor.
type scaleVector2 struct {
	domain.Base
	a      *domain.ArrayInput[domain.Vector2]
	factor *domain.ArrayInput[float64]
	result *domain.Output[domain.Vector2]
	out    domain.Signal
}

func newScaleVector2(id string, _ Env) domain.Node {
	n := &scaleVector2{
		Base:   domain.NewBase(id, "ScaleVector2"),
		a:      domain.NewArrayInput(domain.Vector2{}),
		factor: domain.NewArrayInput(1.0),
		result: domain.NewOutput[domain.Vector2](),
	}
	s := n.Sockets()
	s.Entry("In", n.in)
	s.Signal("Out", &n.out)
	s.In("A", n.a)
	s.In("Factor", n.factor)
	s.Out("Result", n.result)
	return n
}

func (n *scaleVector2) in() {
	n.result.Write(domain.SumVector2(n.a).Scale(domain.Product(n.factor)))
	n.out.Fire()
}

type lengthVector2 struct {
	domain.Base
	a         *domain.Input[domain.Vector2]
	result    *domain.Output[float64]
	intResult *domain.Output[int]
	out       domain.Signal
}

func newLengthVector2(id string, _ Env) domain.Node {
	n := &lengthVector2{
		Base:      domain.NewBase(id, "LengthVector2"),
		a:         domain.NewInput(domain.Vector2{}),
		result:    domain.NewOutput[float64](),
		intResult: domain.NewOutput[int](),
	}
	s := n.Sockets()
	s.Entry("In", n.in)
	s.Signal("Out", &n.out)
	s.In("A", n.a)
	s.Out("Result", n.result)
	s.Out("IntResult", n.intResult)
	return n
}

func (n *lengthVector2) in() {
	l := n.a.Read().Length()
	n.result.Write(l)
	n.intResult.Write(domain.Truncate(l))
	n.out.Fire()
}

type makeVector2 struct {
	domain.Base
	x, y   *domain.Input[float64]
	result *domain.Output[domain.Vector2]
	out    domain.Signal
}

func newMakeVector2(id string, _ Env) domain.Node {
	n := &makeVector2{
		Base:   domain.NewBase(id, "MakeVector2"),
		x:      domain.NewInput(0.0),
		y:      domain.NewInput(0.0),
		result: domain.NewOutput[domain.Vector2](),
	}
	s := n.Sockets()
	s.Entry("In", n.in)
	s.Signal("Out", &n.out)
	s.In("X", n.x)
	s.In("Y", n.y)
	s.Out("Result", n.result)
	return n
}

func (n *makeVector2) in() {
	n.result.Write(domain.Vector2{X: n.x.Read(), Y: n.y.Read()})
	n.out.Fire()
}

type splitVector2 struct {
	domain.Base
	a    *domain.Input[domain.Vector2]
	x, y *domain.Output[float64]
	out  domain.Signal
}

func newSplitVector2(id string, _ Env) domain.Node {
	n := &splitVector2{
		Base: domain.NewBase(id, "SplitVector2"),
		a:    domain.NewInput(domain.Vector2{}),
		x:    domain.NewOutput[float64](),
		y:    domain.NewOutput[float64](),
	}
	s := n.Sockets()
	s.Entry("In", n.in)
	s.Signal("Out", &n.out)
	s.In("A", n.a)
	s.Out("X", n.x)
	s.Out("Y", n.y)
	return n
}

func (n *splitVector2) in() {
	v := n.a.Read()
	n.x.Write(v.X)
	n.y.Write(v.Y)
	n.out.Fire()
}

func registerVector(c *Catalog) {
	c.Register("AddVector2", CategoryVector, newVectorFold("AddVector2", domain.Vector2.Add))
	c.Register("SubtractVector2", CategoryVector, newVectorFold("SubtractVector2", domain.Vector2.Sub))
	c.Register("ScaleVector2", CategoryVector, newScaleVector2)
	c.Register("LengthVector2", CategoryVector, newLengthVector2)
	c.Register("MakeVector2", CategoryVector, newMakeVector2)
	c.Register("SplitVector2", CategoryVector, newSplitVector2)
}
