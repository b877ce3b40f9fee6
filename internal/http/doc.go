// Package http provides optional HTTP adapters for the grid layout editor.
//
// Routes mount under /grid/api:
//   - Layouts: /layouts, /layouts/{id}
//   - Cells: /layouts/{id}/cells, /layouts/{id}/cells/order, /cells/{id}
//   - Placement: /layouts/{id}/recompute
//   - Targeting: /hit-test
//
// Host applications can register handlers on their own mux/router as needed.
package http
