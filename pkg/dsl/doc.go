/*
Package dsl provides a fluent Go builder for action graph definitions.

It builds the same schema.Graph a YAML file would produce, so graphs can be
generated in code or declared inline in tests without a file.

Example usage:

	b := dsl.New("door")

	b.Add("add", "AddInt").
		In("A", 2, 3).
		In("B", 4).
		On("Out", "cmp.In").
		Pipe("Result", "cmp.A")

	b.Add("cmp", "CompareInt").
		In("B", 9)

	loader, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	rt, err := actiongraph.New("", actiongraph.WithLoader(loader))
*/
package dsl
