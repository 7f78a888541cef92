package nodes

import "github.com/aretw0/actiongraph/pkg/domain"

// intMath is a stateless int operator with a secondary float result.
type intMath struct {
	domain.Base
	a, b        *domain.ArrayInput[int]
	result      *domain.Output[int]
	floatResult *domain.Output[float64]
	out         domain.Signal
	eval        func(a, b *domain.ArrayInput[int]) (int, float64)
}

// newIntMath declares A and B operands, or a single Values fan-in when unary is set.
func newIntMath(kind string, unary bool, eval func(a, b *domain.ArrayInput[int]) (int, float64)) Factory {
	return func(id string, _ Env) domain.Node {
		m := &intMath{
			Base:        domain.NewBase(id, kind),
			a:           domain.NewArrayInput(0),
			b:           domain.NewArrayInput(0),
			result:      domain.NewOutput[int](),
			floatResult: domain.NewOutput[float64](),
			eval:        eval,
		}
		s := m.Sockets()
		s.Entry("In", m.in)
		s.Signal("Out", &m.out)
		if unary {
			s.In("Values", m.a)
		} else {
			s.In("A", m.a)
			s.In("B", m.b)
		}
		s.Out("Result", m.result)
		s.Out("FloatResult", m.floatResult)
		return m
	}
}

func (m *intMath) in() {
	r, f := m.eval(m.a, m.b)
	m.result.Write(r)
	m.floatResult.Write(f)
	m.out.Fire()
}

// floatMath is a stateless float operator with a secondary int result,
// truncated toward zero.
type floatMath struct {
	domain.Base
	a, b      *domain.ArrayInput[float64]
	result    *domain.Output[float64]
	intResult *domain.Output[int]
	out       domain.Signal
	eval      func(a, b *domain.ArrayInput[float64]) float64
}

func newFloatMath(kind string, unary bool, eval func(a, b *domain.ArrayInput[float64]) float64) Factory {
	return func(id string, _ Env) domain.Node {
		m := &floatMath{
			Base:      domain.NewBase(id, kind),
			a:         domain.NewArrayInput(0.0),
			b:         domain.NewArrayInput(0.0),
			result:    domain.NewOutput[float64](),
			intResult: domain.NewOutput[int](),
			eval:      eval,
		}
		s := m.Sockets()
		s.Entry("In", m.in)
		s.Signal("Out", &m.out)
		if unary {
			s.In("Values", m.a)
		} else {
			s.In("A", m.a)
			s.In("B", m.b)
		}
		s.Out("Result", m.result)
		s.Out("IntResult", m.intResult)
		return m
	}
}

func (m *floatMath) in() {
	r := m.eval(m.a, m.b)
	m.result.Write(r)
	m.intResult.Write(domain.Truncate(r))
	m.out.Fire()
}

func exactInt(f func(a, b *domain.ArrayInput[int]) int) func(a, b *domain.ArrayInput[int]) (int, float64) {
	return func(a, b *domain.ArrayInput[int]) (int, float64) {
		r := f(a, b)
		return r, float64(r)
	}
}

func registerMath(c *Catalog) {
	c.Register("AddInt", CategoryMath, newIntMath("AddInt", false, exactInt(func(a, b *domain.ArrayInput[int]) int {
		return domain.Sum(a) + domain.Sum(b)
	})))
	c.Register("SubtractInt", CategoryMath, newIntMath("SubtractInt", false, exactInt(func(a, b *domain.ArrayInput[int]) int {
		return domain.Sum(a) - domain.Sum(b)
	})))
	c.Register("MultiplyInt", CategoryMath, newIntMath("MultiplyInt", false, exactInt(func(a, b *domain.ArrayInput[int]) int {
		return domain.Product(a) * domain.Product(b)
	})))
	c.Register("DivideInt", CategoryMath, newIntMath("DivideInt", false, func(a, b *domain.ArrayInput[int]) (int, float64) {
		num, den := domain.Product(a), domain.Product(b)
		if den == 0 {
			return 0, 0
		}
		return num / den, float64(num) / float64(den)
	}))
	c.Register("ModuloInt", CategoryMath, newIntMath("ModuloInt", false, func(a, b *domain.ArrayInput[int]) (int, float64) {
		num, den := domain.Product(a), domain.Product(b)
		if den == 0 {
			return 0, 0
		}
		r := num % den
		return r, float64(r)
	}))
	c.Register("MinInt", CategoryMath, newIntMath("MinInt", true, exactInt(func(a, _ *domain.ArrayInput[int]) int {
		return domain.Min(a)
	})))
	c.Register("MaxInt", CategoryMath, newIntMath("MaxInt", true, exactInt(func(a, _ *domain.ArrayInput[int]) int {
		return domain.Max(a)
	})))

	c.Register("AddFloat", CategoryMath, newFloatMath("AddFloat", false, func(a, b *domain.ArrayInput[float64]) float64 {
		return domain.Sum(a) + domain.Sum(b)
	}))
	c.Register("SubtractFloat", CategoryMath, newFloatMath("SubtractFloat", false, func(a, b *domain.ArrayInput[float64]) float64 {
		return domain.Sum(a) - domain.Sum(b)
	}))
	c.Register("MultiplyFloat", CategoryMath, newFloatMath("MultiplyFloat", false, func(a, b *domain.ArrayInput[float64]) float64 {
		return domain.Product(a) * domain.Product(b)
	}))
	c.Register("DivideFloat", CategoryMath, newFloatMath("DivideFloat", false, func(a, b *domain.ArrayInput[float64]) float64 {
		den := domain.Product(b)
		if den == 0 {
			return 0
		}
		return domain.Product(a) / den
	}))
	c.Register("MinFloat", CategoryMath, newFloatMath("MinFloat", true, func(a, _ *domain.ArrayInput[float64]) float64 {
		return domain.Min(a)
	}))
	c.Register("MaxFloat", CategoryMath, newFloatMath("MaxFloat", true, func(a, _ *domain.ArrayInput[float64]) float64 {
		return domain.Max(a)
	}))
}
