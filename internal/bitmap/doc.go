// Package bitmap streams 24-bit uncompressed BMP images one row at a time.
//
// Rows are written bottom-up, the native BMP order: the first row handed
// to a Writer is the bottom row of the displayed image. Each gray level is
// expanded to an equal blue, green and red triple, and every row is padded
// to a multiple of four bytes.
//
// File writes to a temporary file in the destination directory and
// renames it into place on Close, so the destination path is either
// absent or holds a complete image.
package bitmap
