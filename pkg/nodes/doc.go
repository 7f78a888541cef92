/*
Package nodes provides the built-in action nodes and the Catalog that builds them.

Every node embeds domain.Base and declares its entries, signals and variable
sockets in its constructor, so a prototype's socket table doubles as the kind's
descriptor. Node logic reads inputs through the typed sockets and fires signals
in declaration order after writing outputs.

Categories:

  - math: AddInt, SubtractInt, MultiplyInt, DivideInt, ModuloInt, MinInt, MaxInt
    and their Float counterparts (no ModuloFloat)
  - vector: AddVector2, SubtractVector2, ScaleVector2, LengthVector2, MakeVector2, SplitVector2
  - compare: CompareInt, CompareFloat, CompareBool, CounterInt, CountdownInt
  - logic: Branch, AndBool, OrBool, NotBool
  - flow: Gate, TimedGate, Delay, Sequence
  - interpolate: InterpolateFloat, InterpolateFloatCubic, InterpolateVector2, InterpolateVector2Cubic
*/
package nodes
