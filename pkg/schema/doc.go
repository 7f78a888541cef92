/*
Package schema defines the declarative graph definition consumed by loaders.

A definition lists typed graph variables, states, node instances (kind, literal inputs,
configuration) and links between sockets. Links name endpoints as "node.Socket"; whether
a link carries a signal or a value is decided by the sockets it joins.

The definition is data only. Building a running graph from it is the runtime's job, and
checking it against a node catalog is the validator's.
*/
package schema
