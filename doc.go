// Package goform decodes multipart/form-data bodies into a nested value tree
// shaped by a declared schema.
//
// Part names use bracket notation (title, tags[], size[w]) and are matched
// against the schema; anything the schema does not declare is rejected.
// Scalar parts are buffered and parsed as Text, Int, Float or Bytes. File
// parts are streamed to storage under a name chosen by the schema's
// FilenameGenerator, with directory creation and writes run on an Executor.
//
// Decoding is fail-fast: the first problem ends the request with a single
// *Error carrying a stable code. Per-request limits bound the number of
// fields and files and the size of each.
//
// Typical usage:
//
//	root := dsl.Map().
//	    Field("title", dsl.Text()).
//	    Field("tags", dsl.Array(dsl.Text())).
//	    Field("cover", dsl.File(storage.Counter("uploads", ".png"))).
//	    Build()
//	form, err := goform.NewForm(root, goform.WithMaxFiles(5))
//
//	m, err := goform.DecodeRequest(r.Context(), r, form)
//	// m == goform.Map{
//	//     "title": goform.Text("..."),
//	//     "tags":  goform.Array{goform.Text("a"), goform.Text("b")},
//	//     "cover": goform.File{Filename: "c.png", StoredAs: "uploads/0.png", ...},
//	// }
//
// Parts streams accepted fields one by one instead of building the tree.
// Files written before a failure are not removed.
package goform
