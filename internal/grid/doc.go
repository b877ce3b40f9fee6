// Package grid implements the table layout engine behind the grid editor.
//
// It works in three steps, each consuming the output of the previous one:
//
//   - [Place] reconstructs the logical row/column grid from an ordered list of
//     [Placeable] records, auto-placing every record that is not pinned.
//   - [Resolve] turns the logical grid plus measured cell boxes into one pixel
//     [Interval] per row and per column, approximating indices that are only
//     covered by spanning cells.
//   - [HitTester] maps a cursor onto the resolved intervals and reports whether
//     it points at an existing cell, an insertion seam or a virtual row/column
//     past the end of the grid.
//
// Everything in this package is synchronous and free of I/O.
package grid
