// Package export writes the drawing out of the editor: the vector document
// as PDF, and the displayed raster as an image file or an inline PNG
// snapshot.
package export
