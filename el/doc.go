// Package el provides a typed element DSL over the fiber description
// primitives. Constructors take a mixed argument list: Attr values
// become props, everything else becomes children.
//
//	el.Div(el.Class("card"),
//	    el.H1(el.Text("Title")),
//	    el.Button(el.OnClick(save), el.Text("Save")),
//	)
package el
