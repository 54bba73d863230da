// Package interact models chart interaction as data.
//
// A chart session answers an event (hover, click, brush) with a list of
// [Patch] values: attribute changes on named SVG elements, each with the
// transition duration a browser should animate it over. Sessions also apply
// their own patches to an [Attrs] store so a later re-render reflects the
// current emphasis state.
//
// [IdleGuard] is the double-click detector used by brush zoom. It is owned
// by one chart and reads an injectable clock, so it needs no timer
// goroutine and is deterministic under test.
package interact
