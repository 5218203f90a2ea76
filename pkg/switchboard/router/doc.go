// Package router tracks which component is active in each editor container.
//
// A route such as "panel/editor/style" names a container ("panel") and a
// position inside it. Each container holds at most one current route and the
// args it was opened with. The Router specializes the commands pipeline:
// navigating closes out the container's previous route, opens the target
// component on demand, and leaves the route recorded as current until the
// container is closed or reloaded.
//
// # Basic Usage
//
//	reg := component.NewRegistry()
//	reg.MustRegister("panel/elements", elementsPanel)
//	reg.MustRegister("panel/editor", editorPanel)
//
//	r := router.New(reg)
//	r.MustRegister("panel/elements", nil).
//	    MustRegister("panel/editor/style", nil)
//
//	_ = r.To("panel/elements", nil)                        // elementsPanel.Open, OnRoute
//	_ = r.To("panel/editor/style", route.Args{"id": 5})    // elementsPanel.OnCloseRoute, editorPanel.Open, OnRoute
//	r.IsPartOf("panel/editor")                             // true
//	_ = r.Close("panel")                                   // editorPanel.Close, Inactivate, OnCloseRoute
//
// # Lifecycle ordering
//
// Close clears the component's open flag before calling its Close hook, then
// calls Inactivate, then clears the container's current route, which notifies
// OnCloseRoute. Component implementations may rely on this ordering: a Close
// hook that calls back into Close for the same container is a no-op.
//
// # Saved state and history
//
// SaveState snapshots a container's route and args; RestoreState navigates
// back to it. A StateStore keeps snapshots across sessions. Every successful
// navigation is also appended to the container's history, which Back walks.
package router
