// Package dsl declares form schemas for goform.
//
// A schema is a tree of Map, Array and leaf nodes. Leaves decide how a part
// body is decoded: Text, Int, Float and Bytes are buffered in memory, File is
// streamed to storage under a name chosen by its generator.
//
//	root := dsl.Map().
//	    Field("title", dsl.Text()).
//	    Field("tags", dsl.Array(dsl.Text())).
//	    Field("cover", dsl.File(storage.Counter("uploads", ".png"))).
//	    Build()
//	form, err := goform.NewForm(root, goform.WithMaxFiles(5))
//
// The part name title matches Text, tags[] matches each tag and cover matches
// the file. Nodes are immutable once built and may be shared by many forms.
// Printing a node gives a compact description of the tree:
//
//	Map(title: Text, tags: Array(Text), cover: File(filename_generator))
package dsl
