package nodes

import "github.com/aretw0/actiongraph/pkg/domain"

// relations are the signals of an ordered comparison, in firing order.
type relations struct {
	equal, notEqual, greater, less, greaterOrEqual, lessOrEqual domain.Signal
}

func (r *relations) declare(s *domain.Sockets) {
	s.Signal("Equal", &r.equal)
	s.Signal("NotEqual", &r.notEqual)
	s.Signal("Greater", &r.greater)
	s.Signal("Less", &r.less)
	s.Signal("GreaterOrEqual", &r.greaterOrEqual)
	s.Signal("LessOrEqual", &r.lessOrEqual)
}

// fire fires every relation that holds between a and b. The relations are not
// exclusive: 2 vs 2 fires Equal, GreaterOrEqual and LessOrEqual.
func fire[T domain.Number](r *relations, a, b T) {
	if a == b {
		r.equal.Fire()
	} else {
		r.notEqual.Fire()
	}
	if a > b {
		r.greater.Fire()
	}
	if a < b {
		r.less.Fire()
	}
	if a >= b {
		r.greaterOrEqual.Fire()
	}
	if a <= b {
		r.lessOrEqual.Fire()
	}
}

type compareNumber[T domain.Number] struct {
	domain.Base
	a, b *domain.Input[T]
	rel  relations
}

func newCompare[T domain.Number](kind string) Factory {
	return func(id string, _ Env) domain.Node {
		var zero T
		n := &compareNumber[T]{
			Base: domain.NewBase(id, kind),
			a:    domain.NewInput(zero),
			b:    domain.NewInput(zero),
		}
		s := n.Sockets()
		s.Entry("In", n.in)
		n.rel.declare(s)
		s.In("A", n.a)
		s.In("B", n.b)
		return n
	}
}

func (n *compareNumber[T]) in() { fire(&n.rel, n.a.Read(), n.b.Read()) }

// counter steps its own A cell before comparing. The write lands in whatever
// cell A is bound to, so a shared variable observes every step.
type counter struct {
	domain.Base
	a, b *domain.Input[int]
	step int
	rel  relations
}

func newCounter(kind string, step int) Factory {
	return func(id string, _ Env) domain.Node {
		n := &counter{
			Base: domain.NewBase(id, kind),
			a:    domain.NewInput(0),
			b:    domain.NewInput(0),
			step: step,
		}
		s := n.Sockets()
		s.Entry("In", n.in)
		s.Entry("Reset", n.reset)
		n.rel.declare(s)
		s.In("A", n.a)
		s.In("B", n.b)
		return n
	}
}

func (n *counter) in() {
	n.a.Write(n.a.Read() + n.step)
	fire(&n.rel, n.a.Read(), n.b.Read())
}

func (n *counter) reset() { n.a.Write(0) }

type compareBool struct {
	domain.Base
	a, b            *domain.Input[bool]
	equal, notEqual domain.Signal
}

func newCompareBool(id string, _ Env) domain.Node {
	n := &compareBool{
		Base: domain.NewBase(id, "CompareBool"),
		a:    domain.NewInput(false),
		b:    domain.NewInput(false),
	}
	s := n.Sockets()
	s.Entry("In", n.in)
	s.Signal("Equal", &n.equal)
	s.Signal("NotEqual", &n.notEqual)
	s.In("A", n.a)
	s.In("B", n.b)
	return n
}

func (n *compareBool) in() {
	if n.a.Read() == n.b.Read() {
		n.equal.Fire()
		return
	}
	n.notEqual.Fire()
}

func registerCompare(c *Catalog) {
	c.Register("CompareInt", CategoryCompare, newCompare[int]("CompareInt"))
	c.Register("CompareFloat", CategoryCompare, newCompare[float64]("CompareFloat"))
	c.Register("CompareBool", CategoryCompare, newCompareBool)
	c.Register("CounterInt", CategoryCompare, newCounter("CounterInt", 1))
	c.Register("CountdownInt", CategoryCompare, newCounter("CountdownInt", -1))
}
