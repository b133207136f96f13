// Package bind connects observable models to views.
//
// A view embeds ViewBase, implements Refresh, and calls Bind with each
// model it renders. Bind refreshes the view immediately and then once per
// layout pass in which any bound model changed:
//
//	screen := &loginScreen{model: model}
//	screen.SetContainer(root)
//	bind.Bind(screen, model)
//
//	model.Email.Set("a@b.com")
//	model.Password.Set("secret")
//	pipeline.FlushLayout() // one Refresh, showing both values
//
// Coalescing comes from the layout pipeline rather than from timers: every
// change marks an invisible proxy node in the view's container, and the
// pipeline lays out a marked node once per pass however often it was marked.
package bind
